// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// splice.go implements the splice primitive (spec.md 4.3 step 3): promoting
// a node reached via a foster (link) attachment to the proper-child slot of
// its nearest COMPRESS ancestor, demoting the previous proper child into the
// foster side in its place.
//
// By the time splice runs, "local splays" (splay.go, driven from
// softexpose.go) has already splayed the target to the root of every local
// rake tree it passes through, so the walk from target up to its nearest
// COMPRESS ancestor only ever crosses one node per rake level. Rather than
// hand-enumerating the spec's ten fixed-depth left/right x inner/outer
// geometric sub-cases, splice walks that chain generally, collecting every
// sibling it displaces along the way and folding them back into a smaller
// rake tree with foldRake -- the same net restructuring for any foster
// nesting depth (see DESIGN.md's splice.go entry).
func (f *Forest[V, C]) splice(target *clusterNode[C]) *clusterNode[C] {
	var siblings []*clusterNode[C]
	cur := target

	for {
		up := cur.upLink()
		if up == nil {
			panic("toptree: splice reached a top cluster before finding a compress ancestor")
		}
		if up.isCompress() {
			return f.spliceInto(up, target, siblings)
		}

		// up is a RAKE one level further along the foster chain: its other
		// child is displaced and folded back in below. up itself is being
		// torn apart (its children are reused, but the RAKE container is
		// rebuilt smaller by foldRake), so it is marked DIRTY in place --
		// not cloned, since nothing needs its pre-change shape preserved
		// under a separate identity, only reachable from origTop for the
		// split/destroy pass that is about to walk it.
		sib := up.left
		if sib == cur {
			sib = up.right
		}
		siblings = append(siblings, sib)
		up.state = stateDirty
		cur = up
	}
}

// spliceInto performs the actual swap once the nearest COMPRESS ancestor c
// has been found: target takes over c's proper slot (left or right,
// whichever foster chain it came from), and the previous occupant of that
// slot joins the collected siblings to form the new, smaller foster.
func (f *Forest[V, C]) spliceInto(c, target *clusterNode[C], siblings []*clusterNode[C]) *clusterNode[C] {
	// c may still be CLEAN (reachable unchanged from origTop): dirty it
	// first so the mutations below land on a mutate-safe clone, leaving
	// the original wired into the pre-change snapshot for cleanDirtyNodes.
	c = f.dirty(c)

	// The node actually sitting in c's foster slot is target itself in the
	// direct (no intermediate rake) case, or the topmost rake of the chain
	// we just walked (the last sibling's upLink) otherwise.
	topOfChain := target
	if len(siblings) > 0 {
		topOfChain = siblings[len(siblings)-1].upLink()
	}
	onLeft := c.extras.leftFoster == topOfChain

	var old *clusterNode[C]
	if onLeft {
		old = c.left
	} else {
		old = c.right
	}
	siblings = append(siblings, old)

	newFoster := f.foldRake(c.extras.compressedVertex, siblings)

	if onLeft {
		target = f.orientLeftTo(target, c.extras.compressedVertex)
		c.left = target
	} else {
		target = f.orientTo(target, c.extras.compressedVertex)
		c.right = target
	}
	target.parent = c
	target.link = nil

	if newFoster != nil {
		newFoster.link = c
		newFoster.parent = nil
	}
	if onLeft {
		c.extras.leftFoster = newFoster
	} else {
		c.extras.rightFoster = newFoster
	}

	c.recomputeVertices()
	f.bindVertices(c)
	return c
}

// foldRake combines items pairwise into one RAKE tree sharing boundary v.
// An empty slice yields nil (no foster at all); a single item is returned
// unwrapped, since a lone off-path subtree needs no RAKE wrapper (spec.md 3
// allows a COMPRESS foster to be base/compress/rake).
func (f *Forest[V, C]) foldRake(v VertexHandle, items []*clusterNode[C]) *clusterNode[C] {
	if len(items) == 0 {
		return nil
	}
	node := items[0]
	for _, it := range items[1:] {
		node = f.composeRake(v, node, it)
	}
	return node
}
