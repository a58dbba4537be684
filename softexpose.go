// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// softexpose.go implements softExpose (spec.md 4.3): bringing a vertex to
// the root path of its component without committing to any particular
// boundary shape.
//
// Implementation decision: each softExpose call fires its own
// cleanDirtyNodes/fixateNewNodes pass immediately (see callbacks.go)
// instead of threading origTop/newTop back out to a caller that batches
// several soft-exposes into one pass. spec.md 5 already sanctions more than
// one clean/fixate pass per public operation "for operations that
// naturally yield multiple disjoint components"; two-vertex callers
// (softExposeTwo below, Link, Cut) are exactly that shape, and firing per
// soft-expose keeps the bookkeeping local instead of threading several
// origTop handles through the rest of an operation. See DESIGN.md
// "soft-expose callback granularity".
//
// Rather than alternating an explicit "splay
// within the rake tree" rotation phase with a separate splice phase (the
// spec's step 2 / step 3 split), toptree folds rake-tree ascent entirely
// into splice's chain walk (splice.go), which already generalizes over any
// foster-nesting depth. A node only ever needs genuine BST rotation
// (splay.go) once it is a proper child of a COMPRESS, since only COMPRESS
// nodes have the two real children a rotation swaps; walking up through
// RAKE/foster structure is splice's job. The two steps still alternate --
// splice promotes a node into compress-proper position, splay then carries
// it further up the compress chain until it either hits another foster
// boundary (splice again) or the true root -- producing the same net
// effect as the spec's described alternation. See DESIGN.md "soft-expose
// ascent".
func (f *Forest[V, C]) softExpose(v VertexHandle) *clusterNode[C] {
	start := f.vertices[v].cluster
	if start == nil {
		return nil
	}

	origTop := topOf(start)
	f.rectify(start)

	cur := start
	for !cur.isTop() {
		if cur.parent != nil && cur.parent.isCompress() {
			cur = f.splay(cur)
			continue
		}
		cur = f.splice(cur)
	}

	if cur.bu() == v {
		cur.reverse()
		cur.normalize()
	}
	f.bindVertices(cur)

	f.cleanDirtyNodes(origTop)
	f.fixateNewNodes(cur)

	return cur
}

// topOf walks upward via parent/link to find n's current top cluster. It
// performs no mutation.
func topOf[C any](n *clusterNode[C]) *clusterNode[C] {
	for !n.isTop() {
		n = n.upLink()
	}
	return n
}

// rectify pushes reverse bits down along the path from n to the top,
// top-down, so that every subsequent local action (splay, splice) sees the
// true, un-reversed orientation of every node it touches (spec.md 4.3 step
// 1). It mutates in place: normalize only swaps boundary labels and
// reverse-propagates, it never changes tree shape, so doing it ahead of
// any clone-new bookkeeping is harmless.
func (f *Forest[V, C]) rectify(n *clusterNode[C]) {
	var path []*clusterNode[C]
	for cur := n; !cur.isTop(); {
		up := cur.upLink()
		path = append(path, up)
		cur = up
	}
	for i := len(path) - 1; i >= 0; i-- {
		path[i].normalize()
	}
}

// softExposeTwo implements the two-vertex soft-expose (spec.md 4.3,
// trailing paragraph): bring both u and v onto a single root path when
// they share a component, or report that they do not.
//
// Implementation decision: the spec's guarded second soft-expose (pinning
// the first exposed cluster so the second exposure cannot surpass it) is
// replaced with the simpler two-call form -- soft-expose v, then soft-expose
// u. Callers that need both on the outer boundaries (Cut, ExposeTwo,
// SelectTwo) follow it with hard-expose (hardexpose.go); Link does not. This costs a little of the fine-grained "avoid re-walking
// already-exposed structure" optimization the guard buys, but produces the
// same final shape, since hard-expose re-normalizes from the root down
// regardless of how the path got there. See DESIGN.md "soft-expose guard".
func (f *Forest[V, C]) softExposeTwo(u, v VertexHandle) (sameComponent bool, top *clusterNode[C]) {
	vTop := f.softExpose(v)
	if vTop == nil {
		return false, nil
	}

	if f.vertices[u].cluster != nil && topOf(f.vertices[u].cluster) == vTop {
		// u already shares v's root path; no further exposure needed.
		return true, vTop
	}

	uTop := f.softExpose(u)
	if uTop == nil {
		return false, nil
	}
	return uTop == vTop, uTop
}
