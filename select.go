// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// select.go implements Select/SelectTwo (spec.md 4.9): a non-local search
// descending the top cluster, asking the listener's SelectQuestion at each
// step to choose which of two candidate sub-clusters to continue into,
// until a single BASE cluster remains -- its boundary pair is the answer.
//
// Implementation decision: rather than the spec's transient
// SELECT_AUXILIARY/SELECT_MODIFIED state machinery (building explicit
// HARD_RAKE wrapper nodes to coalesce a COMPRESS's proper child with its
// same-side foster into one binary choice, then undoing that wrapping with
// a dedicated two-pass restore once the winning BASE is found), Select does
// not restructure the tree at all. A live COMPRESS node's compressExtras
// already carries leftComposed/rightComposed: persistent ClusterInfo slots
// the engine keeps up to date across every Join/Split that touches this
// node (callbacks.go), holding exactly the coalesced proper-child+foster
// value the spec's transient wrapper would have recomputed from scratch.
// Reading them directly lets Select stay a pure, read-only walk: at each
// node it only asks the listener to pick a side and recurses into the
// corresponding real child (or, when the chosen composed side carries a
// foster, asks a second, narrower question to pick between the real proper
// child and the real foster). Because nothing is ever cloned, built, or
// torn down, there is no matching Create/Destroy/Join/Split traffic to
// restore afterwards -- SelectQuestion's own access window is the only one
// opened. See DESIGN.md "Select via live composed slots".
//
// The path-variant (SelectTwo) additionally auto-picks the path side of any
// PathAndPoint/PointAndPath decision without consulting the listener at
// all: the point side can never contain the edge between the two exposed
// endpoints, since hardExpose has already guaranteed both endpoints lie
// strictly on the surviving path. Select(v), which is not hunting for a
// specific endpoint pair, always asks.

// Select performs a non-local search rooted at v's component: the listener
// is consulted once per structural step via SelectQuestion until a single
// BASE cluster remains. It reports false if v is isolated (spec.md 4.9
// "select(v) on a singleton returns nothing").
func (f *Forest[V, C]) Select(v VertexHandle) (u, w VertexHandle, ok bool) {
	f.undoPending()

	top := f.softExpose(v)
	if top == nil {
		return invalidVertex, invalidVertex, false
	}

	base := f.selectDescend(top, false)
	return base.bu(), base.bv(), true
}

// SelectTwo performs the path-variant search between u and v: the listener
// is only consulted at PathAndPath decisions, since every PathAndPoint/
// PointAndPath decision along the way is decided automatically in favor of
// the path side (spec.md 4.9). It reports false if u and v are not both
// already connected (spec.md 4.9 "select(u,v) on disconnected u,v returns
// nothing").
func (f *Forest[V, C]) SelectTwo(u, v VertexHandle) (a, b VertexHandle, ok bool) {
	f.undoPending()

	if u == v {
		return invalidVertex, invalidVertex, false
	}

	same, root := f.softExposeTwo(u, v)
	if !same {
		return invalidVertex, invalidVertex, false
	}

	top := root
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

	base := f.selectDescend(top, true)
	return base.bu(), base.bv(), true
}

// selectDescend walks down from n until it reaches a BASE cluster,
// consulting the listener (or, for pathOnly, auto-picking) at each step.
func (f *Forest[V, C]) selectDescend(n *clusterNode[C], pathOnly bool) *clusterNode[C] {
	for {
		switch n.kind {
		case nodeBase:
			return n
		case nodeRake:
			n = f.chooseChild(n.left, PointCluster, n.right, PointCluster, PointAndPoint, pathOnly)
		case nodeHardRake:
			if n.pathOnLeft {
				n = f.chooseChild(n.left, PathCluster, n.right, PointCluster, PathAndPoint, pathOnly)
			} else {
				n = f.chooseChild(n.left, PointCluster, n.right, PathCluster, PointAndPath, pathOnly)
			}
		case nodeCompress:
			n = f.selectCompressStep(n, pathOnly)
		default:
			panic("toptree: select encountered an unexpected node kind")
		}
	}
}

// selectCompressStep decides which of n's two sides to descend into. Each
// side is n's real proper child unless a same-side foster is present, in
// which case the side is represented by the already-live leftComposed/
// rightComposed info coalescing proper child and foster; the listener is
// asked about the coalesced pair first (always PathAndPath: every
// compressExtras side looks like a path cluster from above, foster or not),
// then, only if the chosen side actually carries a foster, a second,
// narrower question (or auto-pick, for pathOnly) resolves which of the two
// real nodes underneath it to continue into.
func (f *Forest[V, C]) selectCompressStep(n *clusterNode[C], pathOnly bool) *clusterNode[C] {
	ex := n.extras

	leftInfo, rightInfo := n.left.info, n.right.info
	if ex.leftFoster != nil {
		leftInfo = ex.leftComposed
	}
	if ex.rightFoster != nil {
		rightInfo = ex.rightComposed
	}

	chosen := f.fireSelectQuestion(leftInfo, rightInfo, PathAndPath)
	if chosen == leftInfo {
		if ex.leftFoster != nil {
			return f.chooseChild(n.left, PathCluster, ex.leftFoster, PointCluster, PathAndPoint, pathOnly)
		}
		return n.left
	}
	if ex.rightFoster != nil {
		return f.chooseChild(ex.rightFoster, PointCluster, n.right, PathCluster, PointAndPath, pathOnly)
	}
	return n.right
}

// chooseChild decides between a and b, both already-classified real
// clusters, returning whichever one to descend into. For pathOnly with
// exactly one side a path cluster, it auto-picks that side; otherwise it
// consults the listener via SelectQuestion.
func (f *Forest[V, C]) chooseChild(a *clusterNode[C], aKind ClusterKind, b *clusterNode[C], bKind ClusterKind, conn ConnectionKind, pathOnly bool) *clusterNode[C] {
	if pathOnly && aKind != bKind {
		if aKind == PathCluster {
			return a
		}
		return b
	}

	chosen := f.fireSelectQuestion(a.info, b.info, conn)
	if chosen == a.info {
		return a
	}
	return b
}

// fireSelectQuestion brackets the listener's SelectQuestion with the same
// local-access window and re-entrancy guard as the Create/Destroy/Join/
// Split callbacks (callbacks.go), tolerating a nil side exactly as those
// do, though Select itself never presents one (only a one-vertex-exposed
// root's duplicated children can be nil, and Select always descends from
// softExpose's plain, un-duplicated top).
func (f *Forest[V, C]) fireSelectQuestion(a, b *ClusterInfo[C], conn ConnectionKind) *ClusterInfo[C] {
	allowInfo(a)
	allowInfo(b)
	f.inCallback = true
	chosen := f.listener.SelectQuestion(a, b, conn)
	f.inCallback = false
	denyInfo(a)
	denyInfo(b)
	return chosen
}
