// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// splay.go implements the self-adjusting splay-tree rotations that back
// both a component's compress tree and each vertex's rake tree (spec.md
// 4.3 step 2). A single rotate/splay pair serves both: a compress tree and
// a rake tree are both plain binary trees linked via parent/left/right,
// differing only in what their nodes' boundaries mean. Splaying never
// crosses a link back-reference (a rake tree's local root, or a COMPRESS's
// foster attachment point) -- it stops exactly at a node whose parent is
// nil, which is precisely where a splay tree's own root sits.
//
// Every rotation clones its two participants via dirty (below) before
// touching them, so the pre-rotation shape survives, reachable from
// origTop, for the later split/destroy callback pass -- this is the
// "duplicates any CLEAN ancestor via clone-new" step spec.md 4.3 step 2
// calls for, implemented once here rather than re-derived at each call
// site.
//
// There is no ecosystem library for this: a splay tree's rotation logic is
// the bespoke algorithmic core the whole package exists to provide, not a
// generic container concern any of the example repos' dependencies cover
// (see DESIGN.md's splay.go entry).

// dirty returns a mutate-safe handle for n: if n is CLEAN it clones it
// (recursively dirtying n's own parent/link first, so the clone is wired
// into an already-mutate-safe ancestor) and returns the clone, leaving the
// original DIRTY with its pre-change children intact. DIRTY/NEW/OBSOLETE
// nodes are already safe to mutate further and are returned unchanged.
func (f *Forest[V, C]) dirty(n *clusterNode[C]) *clusterNode[C] {
	if n == nil || n.state != stateClean {
		return n
	}

	parent, link := n.parent, n.link
	c := n.cloneNew(f)

	switch {
	case parent != nil:
		p := f.dirty(parent)
		if p.left == n {
			p.left = c
		} else {
			p.right = c
		}
		c.parent = p
	case link != nil:
		l := f.dirty(link)
		if l.isCompress() {
			if l.extras.leftFoster == n {
				l.extras.leftFoster = c
			} else {
				l.extras.rightFoster = c
			}
		} else {
			if l.left == n {
				l.left = c
			} else {
				l.right = c
			}
		}
		c.link = l
	}

	f.bindVertices(c)
	return c
}

// rotateUp performs a single BST rotation of n with its parent, making n
// take the parent's place in the tree, and returns the (now current)
// handle for n. It normalizes both participants first (pushing down any
// pending reverse bit so the rotation sees true child identities), then
// recomputes boundaries/bindings for whichever of the two are COMPRESS
// nodes.
func (f *Forest[V, C]) rotateUp(n *clusterNode[C]) *clusterNode[C] {
	n = f.dirty(n)
	p := n.parent // already mutate-safe: dirty(n) dirtied it on the way up
	g := p.parent // likewise already mutate-safe

	p.normalize()
	n.normalize()

	if p.left == n {
		p.left = n.right
		if n.right != nil {
			n.right.parent = p
		}
		n.right = p
	} else {
		p.right = n.left
		if n.left != nil {
			n.left.parent = p
		}
		n.left = p
	}

	n.parent = g
	p.parent = n
	if g != nil {
		if g.left == p {
			g.left = n
		} else {
			g.right = n
		}
	}

	if p.isCompress() {
		p.recomputeVertices()
	}
	if n.isCompress() {
		n.recomputeVertices()
	}
	f.bindVertices(p)
	f.bindVertices(n)
	return n
}

// splay rotates n to the root of its local splay tree (a zig for the last
// step, zig-zig/zig-zag pairs before that), stopping as soon as its parent
// is nil, and returns the (possibly relocated, due to clone-new) handle for
// the node that ends up there. It does not cross a link back-reference:
// link is only followed by callers that need to walk further up the
// hierarchy (spec.md 3 "upLink").
func (f *Forest[V, C]) splay(n *clusterNode[C]) *clusterNode[C] {
	n = f.dirty(n)
	for n.parent != nil {
		p := n.parent
		g := p.parent

		switch {
		case g == nil:
			n = f.rotateUp(n) // zig
		case (g.left == p) == (p.left == n):
			// zig-zig: same-side chain, rotate the parent up first
			f.rotateUp(p)
			n = f.rotateUp(n)
		default:
			// zig-zag: rotate n up twice
			f.rotateUp(n)
			n = f.rotateUp(n)
		}
	}
	return n
}
