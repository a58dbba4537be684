// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// cut.go implements Cut (spec.md 4.5): removing the edge between u and v,
// splitting their component in two.
//
// Implementation decision: rather than spec's three hand-enumerated
// (deg(u), deg(v)) cases built around locating the BASE edge as a specific
// proper child of the exposed root, Cut reuses hardExpose itself to force
// u and v to become the root's own outer boundaries with everything else
// peeled into HARD_RAKE side-pockets (hardexpose.go). Once that has run,
// the edge (u, v) exists iff the remaining inner path is literally a bare
// BASE node; any longer surviving COMPRESS chain between the two peeled
// pockets means u and v are connected through other vertices, not by a
// direct edge, so Cut fails with ErrNoSuchEdge and un-does the hard-expose
// exactly as the next public operation would have. See DESIGN.md
// "Cut via hard-expose".
func (f *Forest[V, C]) Cut(u, v VertexHandle) error {
	f.undoPending()
	if u == v {
		return ErrNoSuchEdge
	}

	same, root := f.softExposeTwo(u, v)
	if !same {
		return ErrNoSuchEdge
	}

	top := f.hardExpose(root, u, v)

	var loPeel, hiPeel *clusterNode[C]
	cur := top
	for cur.isHardRake() {
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

	if !inner.isBase() {
		f.undoHardExpose()
		return ErrNoSuchEdge
	}

	// Commit: mark inner OBSOLETE (rather than firing its Destroy by
	// hand) so the ordinary cleanDirtyNodes walk from top tears down
	// every transient HARD_RAKE wrapper with a matching Split, exactly as
	// undoHardExpose would, and destroys inner at the bottom of that same
	// walk. loPeel/hiPeel, reached as the *other* child at each level,
	// stay CLEAN and so survive the walk untouched, ready to stand alone
	// as the two new top clusters.
	loVertex, hiVertex := top.bu(), top.bv()
	f.hardExposeState = nil
	inner.state = stateObsolete

	f.cleanDirtyNodes(top)

	if loPeel != nil {
		loPeel.parent, loPeel.link = nil, nil
		f.bindVertices(loPeel)
	} else {
		f.vertices[loVertex].cluster = nil
	}
	if hiPeel != nil {
		hiPeel.parent, hiPeel.link = nil, nil
		f.bindVertices(hiPeel)
	} else {
		f.vertices[hiVertex].cluster = nil
	}

	f.vertices[u].degree--
	f.vertices[v].degree--
	f.edges--
	return nil
}
