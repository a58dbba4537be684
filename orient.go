// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// orient.go implements the orientation contract (spec.md 4.2): before two
// clusters are composed into a parent, their boundaries must be forced
// into the shape the parent's kind requires, reversing a child if its
// current orientation has the required shared vertex on the wrong side.
//
// Implementation decision (documented, since spec.md 3 leaves the
// parent-vs-link choice per node underspecified beyond "exactly one is
// non-nil"): toptree always sets parent for a node occupying a proper
// left/right slot (of a COMPRESS, RAKE, or HARD_RAKE alike), and link only
// for a node occupying a COMPRESS's leftFoster/rightFoster slot. This is
// internally consistent with every invariant in spec.md 3 and simpler
// than threading a RAKE-leaf special case through every call site; see
// DESIGN.md "parent vs link".

// orientTo reverses n, if needed, so that n.bv() == target, and returns the
// (possibly cloned) node to use from here on. It panics if neither boundary
// of n equals target (a caller bug: the orientation contract is only ever
// invoked on children already known to share the relevant vertex).
//
// n is routed through dirty first: an orientation-driven reverse mutates
// boundary/child state, so a still-CLEAN n (e.g. a node handed in straight
// from a vertex's back-pointer, or a shared subtree reused verbatim by a
// peel) must be cloned before it is touched, exactly like a splay/splice
// rotation (see splay.go's dirty doc comment).
func (f *Forest[V, C]) orientTo(n *clusterNode[C], target VertexHandle) *clusterNode[C] {
	if n.isRake() {
		if n.bv() != target {
			panic("toptree: rake child does not share the expected boundary vertex")
		}
		return n
	}
	switch target {
	case n.bv():
		return n
	case n.bu():
		n = f.dirty(n)
		n.reverse()
		n.normalize()
		return n
	default:
		panic("toptree: child does not carry the expected boundary vertex")
	}
}

// orientLeftTo reverses n, if needed, so that n.bu() == target, and returns
// the (possibly cloned) node to use from here on.
func (f *Forest[V, C]) orientLeftTo(n *clusterNode[C], target VertexHandle) *clusterNode[C] {
	if n.isRake() {
		if n.bv() != target {
			panic("toptree: rake child does not share the expected boundary vertex")
		}
		return n
	}
	switch target {
	case n.bu():
		return n
	case n.bv():
		n = f.dirty(n)
		n.reverse()
		n.normalize()
		return n
	default:
		panic("toptree: child does not carry the expected boundary vertex")
	}
}

// composeCompress builds a new COMPRESS cluster contracting vertex v from
// children L, R: forces L.bv == R.bu == v, sets the outer boundaries to
// L.bu and R.bv (spec.md 4.2).
func (f *Forest[V, C]) composeCompress(v VertexHandle, left, right *clusterNode[C]) *clusterNode[C] {
	left = f.orientTo(left, v)
	right = f.orientLeftTo(right, v)

	n := f.allocNode(nodeCompress)
	n.left, n.right = left, right
	left.parent, right.parent = n, n
	n.extras.compressedVertex = v
	n.recomputeVertices()
	f.bindVertices(n)
	return n
}

// composeRake builds a new RAKE cluster at boundary vertex v from children
// L, R: forces L.bv == R.bv == v (spec.md 4.2).
func (f *Forest[V, C]) composeRake(v VertexHandle, left, right *clusterNode[C]) *clusterNode[C] {
	left = f.orientTo(left, v)
	right = f.orientTo(right, v)

	n := f.allocNode(nodeRake)
	n.setBoundaries(invalidVertex, v)
	n.left, n.right = left, right
	left.parent, right.parent = n, n
	return n
}

// composeHardRake builds a transient HARD_RAKE cluster with explicit
// boundaries (u, v): pathChild carries the path side (oriented so its
// boundaries match (u, v)), pointChild the raked-off side (oriented, via
// orientTo just like a RAKE child, so its single meaningful boundary --
// bv -- matches whichever of u/v is adjacent to it).
func (f *Forest[V, C]) composeHardRake(u, v VertexHandle, pathChild, pointChild *clusterNode[C], pathIsLeft bool) *clusterNode[C] {
	n := f.allocNode(nodeHardRake)
	n.setBoundaries(u, v)
	n.pathOnLeft = pathIsLeft

	if pathIsLeft {
		pathChild = f.orientLeftTo(pathChild, u)
		pointChild = f.orientTo(pointChild, v)
		n.left, n.right = pathChild, pointChild
	} else {
		pathChild = f.orientTo(pathChild, v)
		pointChild = f.orientTo(pointChild, u)
		n.left, n.right = pointChild, pathChild
	}
	n.left.parent, n.right.parent = n, n
	return n
}
