// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// newBase creates a fresh BASE cluster for the edge (u, v), oriented with
// u as the left boundary and v as the right boundary.
func (f *Forest[V, C]) newBase(u, v VertexHandle) *clusterNode[C] {
	n := f.allocNode(nodeBase)
	n.setBoundaries(u, v)
	f.bindVertices(n)
	return n
}

// cloneNew duplicates n's structure (kind, boundaries, children pointers,
// extras) but not its ClusterInfo: the clone starts life NEW (awaiting
// Create/Join) while the original is marked DIRTY, holding the pre-change
// shape for the subsequent Destroy/Split pass (spec.md 4.1 "clone-new").
//
// The clone does not take ownership of n's children in the structural
// sense -- callers that splice in new children overwrite left/right/extras
// on the returned clone before it is wired into the tree.
func (n *clusterNode[C]) cloneNew(f interface {
	allocNode(nodeKind) *clusterNode[C]
}) *clusterNode[C] {
	c := f.allocNode(n.kind)
	c.boundary = n.boundary
	c.reversed = n.reversed
	c.left, c.right = n.left, n.right

	if n.kind == nodeCompress {
		c.extras.leftFoster = n.extras.leftFoster
		c.extras.rightFoster = n.extras.rightFoster
		c.extras.compressedVertex = n.extras.compressedVertex
	}

	n.state = stateDirty
	c.state = stateNew

	return c
}
