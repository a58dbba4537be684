// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// hardexpose.go implements hard-expose/undo-hard-expose (spec.md 4.6): once
// softExposeTwo has brought u and v onto a shared root path, hardExpose
// forces them to become the path's own outer boundaries, bundling whatever
// lies outside [u, v] into transient HARD_RAKE point-hangs. undoHardExpose
// reverses this before the next public operation runs (spec.md 4.6 "Every
// public operation begins with: if hardExposed -> undoHardExpose()").
//
// Implementation decision: rather than the descriptor-based leftTail/
// rightTail/leftCount bookkeeping spec.md 4.6 describes (an O(1)-undo
// optimization that reconstructs the original COMPRESS nodes from recorded
// slot indices), toptree's undo simply rebuilds an equivalent path by
// composing the surviving pieces (the untouched inner path, plus whichever
// peeled side clusters exist) back together with composeCompress. This
// costs the rebuild its node identity (the reconstructed nodes are new, not
// the literal pre-hard-expose objects) but not its client-visible shape or
// data, since cluster identity is only ever observed through ClusterInfo,
// which the clean/fixate pass keeps faithful regardless of which physical
// node carries it. See DESIGN.md "hard-expose undo".
type hardExposeDescriptor[C any] struct {
	// transientRoot is the HARD_RAKE-wrapped (or, in the degenerate
	// both-sides-already-boundaries case that hardExpose is never called
	// for, bare) top cluster produced by hardExpose.
	transientRoot *clusterNode[C]
}

// vertexOnPath reports whether target is reachable from node by walking
// only proper children and compressedVertex slots -- i.e. whether target
// lies on node's path, as opposed to hanging off it in a foster. hardExpose
// only ever searches for vertices softExposeTwo has already placed on the
// path, so this never needs to look into fosters.
//
// This is an O(size) structural search rather than an O(log n) one (spec.md
// 4.6's leftTail/rightTail/leftCount descriptors exist specifically to avoid
// it) -- a deliberate complexity/simplicity tradeoff for hard-expose, which
// spec.md 2 budgets as a small fraction of the engine; see DESIGN.md
// "hard-expose peel search".
func vertexOnPath[C any](node *clusterNode[C], target VertexHandle) bool {
	if node == nil {
		return false
	}
	if node.bu() == target || node.bv() == target {
		return true
	}
	if node.isCompress() {
		if node.extras.compressedVertex == target {
			return true
		}
		return vertexOnPath(node.left, target) || vertexOnPath(node.right, target)
	}
	return false
}

// peelLeft splits node's path range at u, returning the portion from u to
// node.bv() (inner) and, if u wasn't already node's left boundary, the
// portion from node.bu() to u as a separate path cluster (peeled). node
// must be a COMPRESS whose range actually contains u.
//
// Every COMPRESS node consumed along the way (i.e. every level that
// actually participates in the split) is marked DIRTY in place: its
// children are reused by the new tree, but the node itself is being torn
// apart and must be walked by cleanDirtyNodes for its Split callback before
// being freed -- the same treatment splice.go gives the foster-chain RAKE
// nodes it discards.
func (f *Forest[V, C]) peelLeft(node *clusterNode[C], u VertexHandle) (inner, peeled *clusterNode[C]) {
	if node.bu() == u {
		return node, nil
	}
	if node.state == stateClean {
		node.state = stateDirty
	}

	cv := node.extras.compressedVertex
	if cv == u {
		return node.right, node.left
	}
	if vertexOnPath(node.left, u) {
		innerL, peeledL := f.peelLeft(node.left, u)
		return f.recompose(node, cv, innerL, node.right), peeledL
	}
	innerR, peeledR := f.peelLeft(node.right, u)
	return innerR, f.recompose(node, cv, node.left, peeledR)
}

// recompose rebuilds a COMPRESS node at vertex cv from new children,
// carrying forward orig's foster subtrees (if any): orig is being consumed
// by a peel or an undo-hard-expose rebuild, but the off-path subtrees
// attached at cv are unaffected by where the path splits and must survive
// into the replacement node unchanged.
func (f *Forest[V, C]) recompose(orig *clusterNode[C], cv VertexHandle, left, right *clusterNode[C]) *clusterNode[C] {
	n := f.composeCompress(cv, left, right)
	n.extras.leftFoster, n.extras.rightFoster = orig.extras.leftFoster, orig.extras.rightFoster
	if n.extras.leftFoster != nil {
		n.extras.leftFoster.link = n
	}
	if n.extras.rightFoster != nil {
		n.extras.rightFoster.link = n
	}
	return n
}

// peelRight is peelLeft's mirror image: splits node's path range at v,
// returning the portion from node.bu() to v (inner) and the portion from v
// to node.bv() (peeled), if any.
func (f *Forest[V, C]) peelRight(node *clusterNode[C], v VertexHandle) (inner, peeled *clusterNode[C]) {
	if node.bv() == v {
		return node, nil
	}
	if node.state == stateClean {
		node.state = stateDirty
	}

	cv := node.extras.compressedVertex
	if cv == v {
		return node.left, node.right
	}
	if vertexOnPath(node.right, v) {
		innerR, peeledR := f.peelRight(node.right, v)
		return f.recompose(node, cv, node.left, innerR), peeledR
	}
	innerL, peeledL := f.peelRight(node.left, v)
	return innerL, f.recompose(node, cv, peeledL, node.right)
}

// hardExpose forces u and v to become root's outer boundaries. root must
// already be the top cluster of the component containing both (as left by
// softExposeTwo), with u and v both reachable via vertexOnPath. It runs its
// own clean/fixate pass before returning, so the caller sees a fully CLEAN
// result with client data already live on every new transient cluster.
func (f *Forest[V, C]) hardExpose(root *clusterNode[C], u, v VertexHandle) *clusterNode[C] {
	root.normalize()

	lo, hi := u, v
	inner, loPeel := f.peelLeft(root, lo)
	if !vertexOnPath(inner, hi) {
		lo, hi = v, u
		inner, loPeel = f.peelLeft(root, lo)
	}
	inner, hiPeel := f.peelRight(inner, hi)

	top := inner
	if loPeel != nil {
		top = f.composeHardRake(lo, hi, top, loPeel, false)
	}
	if hiPeel != nil {
		top = f.composeHardRake(lo, hi, top, hiPeel, true)
	}

	f.hardExposeState = &hardExposeDescriptor[C]{transientRoot: top}

	f.cleanDirtyNodes(root)
	f.fixateNewNodes(top)

	return top
}

// undoHardExpose inverts hardExpose: it unwraps the transient HARD_RAKE
// layer(s), marking each DIRTY in place (they are CLEAN at this point,
// having been fixated by hardExpose's own pass), then recomposes the
// surviving inner path and peeled side-clusters into an equivalent ordinary
// COMPRESS path, and runs the matching clean/fixate pass.
func (f *Forest[V, C]) undoHardExpose() {
	d := f.hardExposeState
	f.hardExposeState = nil

	top := d.transientRoot
	var loPeel, hiPeel *clusterNode[C]
	var lo, hi VertexHandle

	cur := top
	for cur.isHardRake() {
		lo, hi = cur.bu(), cur.bv()
		cur.state = stateDirty
		if cur.pathOnLeft {
			hiPeel = cur.right
			cur = cur.left
		} else {
			loPeel = cur.left
			cur = cur.right
		}
	}
	inner := cur

	rebuilt := inner
	if loPeel != nil {
		rebuilt = f.composeCompress(lo, loPeel, rebuilt)
	}
	if hiPeel != nil {
		rebuilt = f.composeCompress(hi, rebuilt, hiPeel)
	}

	f.cleanDirtyNodes(top)
	f.fixateNewNodes(rebuilt)
}
