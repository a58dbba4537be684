// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// nodeKind tags a clusterNode with its role in the hierarchical
// decomposition. This is the tagged-variant re-expression of the original
// CompressClusterNode-subclasses-ClusterNode hierarchy that spec.md 9
// recommends in place of deep inheritance: common operations dispatch on
// kind, and compressExtras (below) holds the fields only COMPRESS needs.
type nodeKind uint8

const (
	nodeBase nodeKind = iota
	nodeCompress
	nodeRake
	nodeHardRake
)

func (k nodeKind) String() string {
	switch k {
	case nodeBase:
		return "BASE"
	case nodeCompress:
		return "COMPRESS"
	case nodeRake:
		return "RAKE"
	case nodeHardRake:
		return "HARD_RAKE"
	default:
		return "nodeKind(?)"
	}
}

// nodeState is the transient lifecycle tag used to sequence Create/Join
// and Destroy/Split callbacks across a rebuild (spec.md 3 "State", 4.8).
type nodeState uint8

const (
	stateClean nodeState = iota
	stateNew
	stateDirty
	stateObsolete
	stateSelectAuxiliary
	stateSelectModified
)

func (s nodeState) String() string {
	switch s {
	case stateClean:
		return "CLEAN"
	case stateNew:
		return "NEW"
	case stateDirty:
		return "DIRTY"
	case stateObsolete:
		return "OBSOLETE"
	case stateSelectAuxiliary:
		return "SELECT_AUXILIARY"
	case stateSelectModified:
		return "SELECT_MODIFIED"
	default:
		return "nodeState(?)"
	}
}

// clusterNode is the unit of hierarchical decomposition: a BASE edge, a
// COMPRESS contraction of one path vertex, a RAKE join at a shared
// boundary, or a transient HARD_RAKE used only during hard-expose/select.
//
// Ownership (spec.md 3): a live clusterNode is uniquely owned by exactly
// one of (a) the forest's root set, (b) its parent's left/right slot, or
// (c) its link node's leftFoster/rightFoster slot (COMPRESS fosters) or
// left/right slot (foster-of-RAKE). parent and link are back-references,
// never ownership.
type clusterNode[C any] struct {
	id int // arena slot, used only for pooling/debug, never observed by callers

	kind     nodeKind
	state    nodeState
	reversed bool

	// boundary holds the two vertex endpoints. For a pure RAKE node only
	// boundary[1] (the shared boundary) is meaningful; boundary[0] is
	// invalidVertex.
	boundary [2]VertexHandle

	// pathOnLeft is only meaningful for kind == nodeHardRake: it records
	// which of left/right carries the path side, since a HARD_RAKE's two
	// children are not interchangeable the way a RAKE's are (spec.md 4.6).
	pathOnLeft bool

	// oneVertexRoot and oneVertexConn mark (and classify) the duplicated
	// root built by Expose for the single-vertex case (spec.md 4.7): its
	// Join/Split connection kind is one of the LPoint.../RPoint...
	// variants, computed once from the pre-duplication root's shape
	// rather than re-derived structurally (see expose.go).
	oneVertexRoot bool
	oneVertexConn ConnectionKind

	left, right *clusterNode[C] // proper children, nil for BASE

	// Exactly one of parent/link is non-nil, except for a top cluster
	// (parent == nil && link == nil, see isTop).
	parent *clusterNode[C]
	link   *clusterNode[C]

	info *ClusterInfo[C]

	// extras is non-nil only for kind == nodeCompress.
	extras *compressExtras[C]
}

// compressExtras holds the fields that only a COMPRESS cluster needs:
// its (optional) foster subtrees, the vertex it contracts, and the two
// auxiliary ClusterInfo slots used to expose intermediate join/split
// stages to the client (spec.md 3, 4.8).
type compressExtras[C any] struct {
	leftFoster, rightFoster *clusterNode[C]

	compressedVertex VertexHandle

	leftComposed, rightComposed *ClusterInfo[C]
}

func (n *clusterNode[C]) isBase() bool      { return n.kind == nodeBase }
func (n *clusterNode[C]) isCompress() bool  { return n.kind == nodeCompress }
func (n *clusterNode[C]) isRake() bool      { return n.kind == nodeRake }
func (n *clusterNode[C]) isHardRake() bool  { return n.kind == nodeHardRake }
func (n *clusterNode[C]) isDirty() bool     { return n.state == stateDirty }
func (n *clusterNode[C]) isObsolete() bool  { return n.state == stateObsolete }
func (n *clusterNode[C]) isNew() bool       { return n.state == stateNew }
func (n *clusterNode[C]) isClean() bool     { return n.state == stateClean }
func (n *clusterNode[C]) isSelectAux() bool { return n.state == stateSelectAuxiliary }

// isTop reports whether n is the top cluster of its component: it has
// neither a parent nor a link back-reference.
func (n *clusterNode[C]) isTop() bool {
	return n.parent == nil && n.link == nil
}

// bu/bv name the two boundary slots the way spec.md 3/4.2 does: bu is the
// "left" boundary, bv the "right" boundary (the one adjacent to whatever
// vertex is being composed next). A pure RAKE's only boundary is bv.
func (n *clusterNode[C]) bu() VertexHandle { return n.boundary[0] }
func (n *clusterNode[C]) bv() VertexHandle { return n.boundary[1] }

func (n *clusterNode[C]) setBoundaries(bu, bv VertexHandle) {
	n.boundary[0] = bu
	n.boundary[1] = bv
}

// upLink returns whichever of parent/link is set (nil for a top cluster).
func (n *clusterNode[C]) upLink() *clusterNode[C] {
	if n.parent != nil {
		return n.parent
	}
	return n.link
}

// isProperChildOf reports whether n is the left or right proper child of
// p (as opposed to a foster child referenced via link).
func isProperChildOf[C any](n, p *clusterNode[C]) bool {
	return p != nil && (p.left == n || p.right == n)
}
