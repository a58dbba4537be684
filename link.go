// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// link.go implements Link (spec.md 4.4): adding an edge between u and v.
//
// Implementation decision: rather than spec's six hand-enumerated
// (deg(u), deg(v)) cases, Link always wraps the new BASE edge into
// whichever of u's/v's current top cluster it touches via a single
// composeCompress call, generalizing the same way splice.go generalizes
// rake-chain ascent. composeCompress tolerates a RAKE child (its only
// boundary already equals the compressed vertex, so no reorientation is
// needed) exactly as well as a COMPRESS/BASE child, so the degree of the
// anchor vertex never needs to be inspected beyond "is it isolated" --
// see DESIGN.md "Link case generalization".
func (f *Forest[V, C]) Link(u, v VertexHandle) error {
	f.undoPending()
	if u == v {
		return ErrSelfLoop
	}

	// newBase is deliberately not allocated until each branch below is
	// already committed to succeeding: newBase's bindVertices call
	// mutates f.vertices[u]/[v].cluster immediately, and softExposeTwo
	// fires its own clean/fixate callback pass as soon as it runs
	// (DESIGN.md "soft-expose callback granularity"). spec.md 7 requires
	// a failing operation to perform no callbacks and leave the forest
	// exactly as it was, so the only case that can fail -- two
	// already-connected, non-isolated vertices -- must be ruled out with
	// the non-mutating sameComponent check before anything else runs.
	var top *clusterNode[C]
	switch {
	case f.vertices[u].cluster == nil && f.vertices[v].cluster == nil:
		top = f.newBase(u, v)
	case f.vertices[u].cluster == nil:
		vTop := f.softExpose(v)
		top = f.composeCompress(v, f.newBase(u, v), vTop)
	case f.vertices[v].cluster == nil:
		uTop := f.softExpose(u)
		top = f.composeCompress(u, uTop, f.newBase(u, v))
	default:
		if f.sameComponent(u, v) {
			return ErrAlreadyConnected
		}
		f.softExposeTwo(u, v)
		vTop := topOf(f.vertices[v].cluster)
		uTop := topOf(f.vertices[u].cluster)
		vSide := f.composeCompress(v, f.newBase(u, v), vTop)
		top = f.composeCompress(u, uTop, vSide)
	}

	f.fixateNewNodes(top)

	f.vertices[u].degree++
	f.vertices[v].degree++
	f.edges++
	return nil
}

// LinkNear is the hinted overload of Link (spec.md 4.4): hint must already
// share v's component, and is soft-exposed immediately before the link so
// that whatever cyclic-order meaning the caller's Join implementation
// derives from exposure order places hint adjacent to v.
//
// Implementation decision: this engine does not maintain an explicit
// cyclic ordering within a rake tree (spec.md 3 declines to mandate one),
// so the hint's effect is limited to this exposure-order nudge rather
// than a guaranteed structural adjacency -- see DESIGN.md "Link hint
// overloads".
func (f *Forest[V, C]) LinkNear(u, v, hint VertexHandle) error {
	if !f.sameComponent(hint, v) {
		return ErrInvalidHint
	}
	f.softExpose(hint)
	return f.Link(u, v)
}

// LinkNearBoth hints both endpoints (spec.md 4.4 "(a,u),(b,v)").
func (f *Forest[V, C]) LinkNearBoth(hintU, u, hintV, v VertexHandle) error {
	if !f.sameComponent(hintU, u) || !f.sameComponent(hintV, v) {
		return ErrInvalidHint
	}
	f.softExpose(hintU)
	f.softExpose(hintV)
	return f.Link(u, v)
}

// sameComponent reports whether a and b currently share a component,
// without exposing either. a == b trivially qualifies.
func (f *Forest[V, C]) sameComponent(a, b VertexHandle) bool {
	if a == b {
		return true
	}
	ca, cb := f.vertices[a].cluster, f.vertices[b].cluster
	if ca == nil || cb == nil {
		return false
	}
	return topOf(ca) == topOf(cb)
}
