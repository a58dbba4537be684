// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// reverse flips n's lazy reverse bit. It never touches n's children: the
// bit is only pushed down by normalize, right before something needs to
// look past n at its children's true orientation (spec.md 3 "Reverse
// bit", 4.1).
func (n *clusterNode[C]) reverse() {
	n.reversed = !n.reversed
}

// normalize pushes a pending reverse bit down into n's proper children
// (and, for COMPRESS, its foster children and composed-info slots too),
// then clears it on n. It is a no-op if n's reverse bit is already clear.
//
// For a non-rake node (BASE/COMPRESS/HARD_RAKE), normalizing also swaps
// the two boundary slots, since boundary[0]/boundary[1] are defined
// relative to the current (possibly reversed) orientation (spec.md 3
// "Boundaries").
func (n *clusterNode[C]) normalize() {
	if !n.reversed {
		return
	}
	n.reversed = false

	switch n.kind {
	case nodeRake:
		// A RAKE's single boundary is unaffected by reversal; its two
		// children share that boundary regardless of orientation, so
		// there is nothing to swap at this level. Children still get
		// the reverse pushed onto them.
		if n.left != nil {
			n.left.reverse()
		}
		if n.right != nil {
			n.right.reverse()
		}

	case nodeHardRake:
		n.boundary[0], n.boundary[1] = n.boundary[1], n.boundary[0]
		if n.left != nil {
			n.left.reverse()
		}
		if n.right != nil {
			n.right.reverse()
		}

	default: // BASE, COMPRESS
		n.boundary[0], n.boundary[1] = n.boundary[1], n.boundary[0]
		if n.left != nil {
			n.left.reverse()
		}
		if n.right != nil {
			n.right.reverse()
		}
		if n.kind == nodeCompress {
			n.extras.leftFoster, n.extras.rightFoster = n.extras.rightFoster, n.extras.leftFoster
			n.extras.leftComposed, n.extras.rightComposed = n.extras.rightComposed, n.extras.leftComposed
		}
	}
}

// bindVertices installs n into the cluster back-pointer of both of n's
// boundary vertices, unless n is a RAKE (whose boundary vertex is covered
// by whichever non-rake ancestor eventually owns it -- spec.md 3 "Vertex
// back-pointer": v.cluster is the topmost *non-rake* cluster) -- except
// when n is itself a top cluster (no ancestor exists to cover it, e.g. a
// vertex whose every incident edge is a leaf, decomposing into nested
// RAKEs with no enclosing COMPRESS at all), in which case n is the best
// available back-pointer and must be bound directly.
func (f *Forest[V, C]) bindVertices(n *clusterNode[C]) {
	if n.isRake() {
		if n.isTop() {
			f.vertices[n.bv()].cluster = n
		}
		return
	}
	if n.boundary[0] != invalidVertex {
		f.vertices[n.boundary[0]].cluster = n
	}
	if n.boundary[1] != invalidVertex {
		f.vertices[n.boundary[1]].cluster = n
	}
	if n.isCompress() && n.extras.compressedVertex != invalidVertex {
		f.vertices[n.extras.compressedVertex].cluster = n
	}
}

// recomputeVertices recomputes a COMPRESS node's outer boundaries from its
// (already-oriented) children: left.bv() and right.bu() are both the
// compressed vertex; the outer boundaries are left.bu() and right.bv()
// (spec.md 3 "Boundaries").
func (n *clusterNode[C]) recomputeVertices() {
	if !n.isCompress() {
		return
	}
	n.boundary[0] = n.left.bu()
	n.boundary[1] = n.right.bv()
	n.extras.compressedVertex = n.left.bv()
}
