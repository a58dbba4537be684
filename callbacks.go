// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// callbacks.go implements the clean/fixate discipline that keeps
// caller-supplied cluster data consistent with the evolving tree (spec.md
// 4.8): after a rebuild the engine holds an old subgraph (DIRTY/OBSOLETE
// nodes, reachable from an origTop snapshot) and a new subgraph (NEW nodes,
// reachable from a newTop), and must emit split/destroy for every node of
// the former before emitting create/join for every node of the latter.
//
// cleanDirtyNodes and fixateNewNodes both stop as soon as they reach a
// child that is not itself part of the changed set (CLEAN, for
// cleanDirtyNodes; anything other than NEW, for fixateNewNodes) -- such a
// child is being relocated/reused verbatim, not rebuilt, so it neither
// fires a callback nor gets freed.

// cleanDirtyNodes walks the old subgraph rooted at o, pre-order, firing
// destroy/split for every DIRTY/OBSOLETE node and then freeing it.
func (f *Forest[V, C]) cleanDirtyNodes(o *clusterNode[C]) {
	if o == nil || (!o.isDirty() && !o.isObsolete()) {
		return
	}

	switch o.kind {
	case nodeBase:
		f.fireDestroy(o)
	case nodeRake, nodeHardRake:
		f.fireSplitNode(o.left, o.right, o, connectionFor(o))
		f.cleanDirtyNodes(o.left)
		f.cleanDirtyNodes(o.right)
	case nodeCompress:
		if o.oneVertexRoot {
			f.fireSplitInfo(infoOf(o.left), infoOf(o.right), o.info, o.oneVertexConn)
		} else {
			f.cleanCompressSplits(o)
		}
		f.cleanDirtyNodes(o.left)
		f.cleanDirtyNodes(o.right)
		f.cleanDirtyNodes(o.extras.leftFoster)
		f.cleanDirtyNodes(o.extras.rightFoster)
	}

	f.freeNode(o)
}

// fixateNewNodes walks the new subgraph rooted at n, post-order,
// normalizing each node and then firing create/join, finally marking it
// CLEAN.
func (f *Forest[V, C]) fixateNewNodes(n *clusterNode[C]) {
	if n == nil || !n.isNew() {
		return
	}
	n.normalize()

	switch n.kind {
	case nodeBase:
		f.fireCreate(n)
	case nodeRake, nodeHardRake:
		f.fixateNewNodes(n.left)
		f.fixateNewNodes(n.right)
		f.fireJoinNode(n, n.left, n.right, connectionFor(n))
	case nodeCompress:
		f.fixateNewNodes(n.left)
		f.fixateNewNodes(n.right)
		f.fixateNewNodes(n.extras.leftFoster)
		f.fixateNewNodes(n.extras.rightFoster)
		if n.oneVertexRoot {
			f.fireJoinInfo(n.info, infoOf(n.left), infoOf(n.right), n.oneVertexConn)
		} else {
			f.cleanCompressJoins(n)
		}
	}

	n.state = stateClean
}

// cleanCompressSplits fires the (up to three) split callbacks for a
// COMPRESS whose shape changed, in the fixed order spec.md 4.8 describes:
// the top-level split first (against the intermediate composed-info slots
// when both fosters are present), then each composed split into
// proper+foster.
func (f *Forest[V, C]) cleanCompressSplits(o *clusterNode[C]) {
	ex := o.extras
	switch {
	case ex.leftFoster != nil && ex.rightFoster != nil:
		f.fireSplitInfo(ex.leftComposed, ex.rightComposed, o.info, PathAndPath)
		f.fireSplitInfo(o.left.info, ex.leftFoster.info, ex.leftComposed, PathAndPoint)
		f.fireSplitInfo(ex.rightFoster.info, o.right.info, ex.rightComposed, PointAndPath)
	case ex.leftFoster != nil:
		f.fireSplitInfo(ex.leftComposed, o.right.info, o.info, PathAndPath)
		f.fireSplitInfo(o.left.info, ex.leftFoster.info, ex.leftComposed, PathAndPoint)
	case ex.rightFoster != nil:
		f.fireSplitInfo(o.left.info, ex.rightComposed, o.info, PathAndPath)
		f.fireSplitInfo(ex.rightFoster.info, o.right.info, ex.rightComposed, PointAndPath)
	default:
		f.fireSplitInfo(o.left.info, o.right.info, o.info, PathAndPath)
	}
}

// cleanCompressJoins mirrors cleanCompressSplits for the fixate pass.
func (f *Forest[V, C]) cleanCompressJoins(n *clusterNode[C]) {
	ex := n.extras
	switch {
	case ex.leftFoster != nil && ex.rightFoster != nil:
		f.fireJoinInfo(ex.leftComposed, n.left.info, ex.leftFoster.info, PathAndPoint)
		f.fireJoinInfo(ex.rightComposed, ex.rightFoster.info, n.right.info, PointAndPath)
		f.fireJoinInfo(n.info, ex.leftComposed, ex.rightComposed, PathAndPath)
	case ex.leftFoster != nil:
		f.fireJoinInfo(ex.leftComposed, n.left.info, ex.leftFoster.info, PathAndPoint)
		f.fireJoinInfo(n.info, ex.leftComposed, n.right.info, PathAndPath)
	case ex.rightFoster != nil:
		f.fireJoinInfo(ex.rightComposed, ex.rightFoster.info, n.right.info, PointAndPath)
		f.fireJoinInfo(n.info, n.left.info, ex.rightComposed, PathAndPath)
	default:
		f.fireJoinInfo(n.info, n.left.info, n.right.info, PathAndPath)
	}
}

// infoOf returns n's ClusterInfo, or nil if n itself is nil -- the
// one-vertex-exposed root (expose.go) may have only one real child, and the
// missing side is passed through to the listener as a nil *ClusterInfo, the
// same relaxed-nullability the listener contract already tolerates for
// payloads (see SPEC_FULL.md open question resolution).
func infoOf[C any](n *clusterNode[C]) *ClusterInfo[C] {
	if n == nil {
		return nil
	}
	return n.info
}

// connectionFor derives the ConnectionKind for a RAKE/HARD_RAKE node's own
// join/split (spec.md 4.8's mapping table).
func connectionFor[C any](n *clusterNode[C]) ConnectionKind {
	if n.oneVertexRoot {
		return n.oneVertexConn
	}
	if n.isRake() {
		return PointAndPoint
	}
	// HARD_RAKE
	if n.pathOnLeft {
		return PathAndPoint
	}
	return PointAndPath
}

// fireCreate/fireDestroy/fireJoinNode/fireSplitNode are node-level
// conveniences over the ClusterInfo-level primitives below.
func (f *Forest[V, C]) fireCreate(n *clusterNode[C]) { f.fireCreateInfo(n.info, PathCluster) }
func (f *Forest[V, C]) fireDestroy(n *clusterNode[C]) { f.fireDestroyInfo(n.info, PathCluster) }

func (f *Forest[V, C]) fireJoinNode(parent, a, b *clusterNode[C], conn ConnectionKind) {
	f.fireJoinInfo(parent.info, a.info, b.info, conn)
}

func (f *Forest[V, C]) fireSplitNode(a, b, parent *clusterNode[C], conn ConnectionKind) {
	f.fireSplitInfo(a.info, b.info, parent.info, conn)
}

// The four ClusterInfo-level primitives bracket every Listener call with
// the local-access window (spec.md 4.8 "Local access") and the re-entrancy
// guard (spec.md 5): f.inCallback is asserted for the call's duration so
// that any Forest method invoked from inside a Listener callback panics
// instead of silently corrupting mid-rebuild state.
func (f *Forest[V, C]) fireCreateInfo(c *ClusterInfo[C], kind ClusterKind) {
	c.allow()
	f.inCallback = true
	f.listener.Create(c, kind)
	f.inCallback = false
	c.deny()
}

func (f *Forest[V, C]) fireDestroyInfo(c *ClusterInfo[C], kind ClusterKind) {
	c.allow()
	f.inCallback = true
	f.listener.Destroy(c, kind)
	f.inCallback = false
	c.deny()
}

func (f *Forest[V, C]) fireJoinInfo(parent, a, b *ClusterInfo[C], conn ConnectionKind) {
	parent.allow()
	allowInfo(a)
	allowInfo(b)
	f.inCallback = true
	f.listener.Join(parent, a, b, conn)
	f.inCallback = false
	parent.deny()
	denyInfo(a)
	denyInfo(b)
}

func (f *Forest[V, C]) fireSplitInfo(a, b, parent *ClusterInfo[C], conn ConnectionKind) {
	allowInfo(a)
	allowInfo(b)
	parent.allow()
	f.inCallback = true
	f.listener.Split(a, b, parent, conn)
	f.inCallback = false
	denyInfo(a)
	denyInfo(b)
	parent.deny()
}

// allowInfo/denyInfo tolerate a nil ClusterInfo, the counterpart to infoOf's
// nil pass-through for a one-vertex-exposed root's missing side.
func allowInfo[C any](c *ClusterInfo[C]) {
	if c != nil {
		c.allow()
	}
}

func denyInfo[C any](c *ClusterInfo[C]) {
	if c != nil {
		c.deny()
	}
}
