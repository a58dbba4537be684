// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// expose.go implements the public Expose/ExposeTwo entry points (spec.md
// 4.7): bringing one or two vertices to the boundary of their component's
// top cluster and handing the caller a live, readable ClusterHandle.
//
// Implementation decision (Open Question, recorded in DESIGN.md "Expose
// one-vertex root shape"): rather than restructuring the exposed root so
// its two "children" are literally freshly built point clusters, Expose
// reuses the existing top cluster's own left/right exactly as they stand
// (nil for a BASE, the two path halves for a COMPRESS, the raked siblings
// for a RAKE) and only attaches the oneVertexRoot marker plus the
// ConnectionKind that describes how those children relate to the exposed
// vertex. The clone-new/dirty machinery (clone.go, callbacks.go) already
// treats this exactly like any other rebuild: the original is torn down
// (Destroy/Split) and the duplicate is built up (Create/Join) from the
// very same, still-live children.

// ExposeOneResult classifies the outcome of Expose (spec.md 4.7).
type ExposeOneResult int

const (
	// ExposeSingle is returned for an isolated (degree 0) vertex: there is
	// no cluster to hand back.
	ExposeSingle ExposeOneResult = iota

	// ExposeComponent is returned when v has at least one incident edge:
	// the returned handle is the one-vertex-exposed root.
	ExposeComponent
)

func (r ExposeOneResult) String() string {
	switch r {
	case ExposeSingle:
		return "ExposeSingle"
	case ExposeComponent:
		return "ExposeComponent"
	default:
		return "ExposeOneResult(?)"
	}
}

// ExposeTwoResult classifies the outcome of ExposeTwo (spec.md 4.7).
type ExposeTwoResult int

const (
	// BothSingle: u and v are both isolated.
	BothSingle ExposeTwoResult = iota

	// LeftSingle: u is isolated, v is not.
	LeftSingle

	// RightSingle: v is isolated, u is not.
	RightSingle

	// OneVertex: u and v name the same vertex; the result is that
	// vertex's one-vertex-exposed root (see Expose).
	OneVertex

	// CommonComponent: u and v are distinct, non-isolated, and share a
	// component; the returned handle's boundaries are exactly (u, v).
	CommonComponent

	// DifferentComponents: u and v are non-isolated but lie in different
	// components.
	DifferentComponents
)

func (r ExposeTwoResult) String() string {
	switch r {
	case BothSingle:
		return "BothSingle"
	case LeftSingle:
		return "LeftSingle"
	case RightSingle:
		return "RightSingle"
	case OneVertex:
		return "OneVertex"
	case CommonComponent:
		return "CommonComponent"
	case DifferentComponents:
		return "DifferentComponents"
	default:
		return "ExposeTwoResult(?)"
	}
}

// Expose brings v to the boundary of its component's top cluster and
// returns a handle to it, readable via ClusterHandle.Info until the next
// public operation (spec.md 4.7, 9 "Local access").
func (f *Forest[V, C]) Expose(v VertexHandle) (ExposeOneResult, *ClusterHandle[C]) {
	f.undoPending()

	if f.vertices[v].cluster == nil {
		return ExposeSingle, nil
	}

	top := f.softExpose(v)
	dup := top.cloneNew(f)
	dup.oneVertexRoot = true
	dup.oneVertexConn = oneVertexConnectionFor(top, v)

	// dup takes top's place: its children and boundary vertices must point
	// at dup, since cleanDirtyNodes frees top.
	if dup.left != nil {
		dup.left.parent = dup
	}
	if dup.right != nil {
		dup.right.parent = dup
	}
	if dup.isCompress() {
		if dup.extras.leftFoster != nil {
			dup.extras.leftFoster.link = dup
		}
		if dup.extras.rightFoster != nil {
			dup.extras.rightFoster.link = dup
		}
	}
	f.bindVertices(dup)

	f.cleanDirtyNodes(top)
	f.fixateNewNodes(dup)

	f.oneVertexRoot = dup
	f.oneVertexOf = v
	f.exposeInfo(dup.info)

	return ExposeComponent, &ClusterHandle[C]{node: dup}
}

// oneVertexConnectionFor classifies how top's existing children relate to
// the vertex being exposed, for Expose's duplicated root.
func oneVertexConnectionFor[C any](top *clusterNode[C], v VertexHandle) ConnectionKind {
	switch {
	case top.isRake():
		return LPointAndRPoint
	case top.isCompress() && top.extras.compressedVertex == v:
		return LPointAndRPoint
	case top.bu() == v:
		return RPointOverLPoint
	default:
		return LPointOverRPoint
	}
}

// undoOneVertexExpose closes the local-access window opened by Expose and
// clears the one-vertex marker, run at the top of the next public
// operation (spec.md 4.6 "Every public operation begins with...").
func (f *Forest[V, C]) undoOneVertexExpose() {
	top := f.oneVertexRoot
	f.oneVertexRoot = nil
	f.oneVertexOf = invalidVertex
	top.oneVertexRoot = false
}

// ExposeTwo brings u and v to the two boundaries of their shared
// component's top cluster (spec.md 4.7).
func (f *Forest[V, C]) ExposeTwo(u, v VertexHandle) (ExposeTwoResult, *ClusterHandle[C]) {
	f.undoPending()

	if u == v {
		_, h := f.Expose(u)
		return OneVertex, h
	}

	uIsolated := f.vertices[u].cluster == nil
	vIsolated := f.vertices[v].cluster == nil
	switch {
	case uIsolated && vIsolated:
		return BothSingle, nil
	case uIsolated:
		return LeftSingle, nil
	case vIsolated:
		return RightSingle, nil
	}

	same, top := f.softExposeTwo(u, v)
	if !same {
		return DifferentComponents, nil
	}

	switch {
	case top.bu() == u && top.bv() == v:
		// already the right shape
	case top.bu() == v && top.bv() == u:
		top.reverse()
		top.normalize()
		f.bindVertices(top)
	default:
		top = f.hardExpose(top, u, v)
		if top.bu() != u {
			top.reverse()
			top.normalize()
			f.bindVertices(top)
		}
	}

	f.exposeInfo(top.info)
	return CommonComponent, &ClusterHandle[C]{node: top}
}
