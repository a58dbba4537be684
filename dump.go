// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

import (
	"fmt"
	"io"
	"strings"
)

// dump.go implements the teacher's dumper.go idiom: a String() wrapper
// over a dump(w io.Writer) error that walks the structure recursively,
// indenting one "." per depth level. Unlike the teacher's trie dump (which
// always prints every stored value), this dumper consults
// vertexPayloadIsZST/clusterValueIsZST (forest.go, wired from
// internal/value.IsZST) to skip printing a meaningless "{}" for every
// vertex/cluster when V or C is a zero-sized type.

// String implements fmt.Stringer for debugging: a full recursive dump of
// every component's cluster decomposition.
func (f *Forest[V, C]) String() string {
	w := new(strings.Builder)
	if err := f.dump(w); err != nil {
		panic(err)
	}
	return w.String()
}

// dump writes a human-readable dump of the forest to w: one section per
// component, each a recursive indented walk of its top cluster.
//
//	Output:
//
//	vertices: 5 edges: 4 components: 1
//
//	[COMPONENT] root vertex 0
//	[COMPRESS] state:CLEAN bu:0 bv:4 cv:2
//	.[COMPRESS] state:CLEAN bu:0 bv:2 cv:1
//	..[BASE] state:CLEAN bu:0 bv:1
//	..[BASE] state:CLEAN bu:1 bv:2
//	.[COMPRESS] state:CLEAN bu:2 bv:4 cv:3
//	..[BASE] state:CLEAN bu:2 bv:3
//	..[BASE] state:CLEAN bu:3 bv:4
func (f *Forest[V, C]) dump(w io.Writer) error {
	must := func(_ int, err error) {
		if err != nil {
			panic(err)
		}
	}

	must(fmt.Fprintf(w, "vertices: %d edges: %d components: %d\n",
		f.NumVertices(), f.NumEdges(), f.NumComponents()))

	seen := make(map[*clusterNode[C]]bool)
	for v := range f.Vertices() {
		vr := &f.vertices[v]
		if vr.cluster == nil {
			must(fmt.Fprintf(w, "\n[SINGLE] vertex %d%s\n", v, f.payloadSuffix(v)))
			continue
		}

		top := topOf(vr.cluster)
		if seen[top] {
			continue
		}
		seen[top] = true

		must(fmt.Fprintf(w, "\n[COMPONENT] root vertex %d\n", v))
		f.dumpNode(w, top, "")
	}

	return nil
}

// dumpNode recursively dumps n and its children/fosters, indenting one
// "." per depth level, the same convention the teacher's node.dumpRec
// uses for trie depth.
func (f *Forest[V, C]) dumpNode(w io.Writer, n *clusterNode[C], indent string) {
	if n == nil {
		return
	}

	must := func(_ int, err error) {
		if err != nil {
			panic(err)
		}
	}

	line := fmt.Sprintf("%s[%s] state:%s bu:%d bv:%d", indent, n.kind, n.state, n.bu(), n.bv())
	if n.isCompress() {
		line += fmt.Sprintf(" cv:%d", n.extras.compressedVertex)
	}
	if n.reversed {
		line += " reversed"
	}
	if !f.clusterValueIsZST {
		line += fmt.Sprintf(" value:%v", n.info.debugValue())
	}
	must(fmt.Fprintln(w, line))

	child := indent + "."
	f.dumpNode(w, n.left, child)
	f.dumpNode(w, n.right, child)
	if n.isCompress() {
		f.dumpNode(w, n.extras.leftFoster, child)
		f.dumpNode(w, n.extras.rightFoster, child)
	}
}

// payloadSuffix formats v's payload for an isolated vertex's dump line,
// omitting it entirely when V is a zero-sized type.
func (f *Forest[V, C]) payloadSuffix(v VertexHandle) string {
	if f.vertices[v].payloadIsZST {
		return ""
	}
	return fmt.Sprintf(" payload:%v", f.vertices[v].payload)
}

// String implements fmt.Stringer for a cluster handle: a single-line
// summary, not a full recursive dump (use Forest.String for that).
func (h *ClusterHandle[C]) String() string {
	if h == nil || h.node == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[%s] bu:%d bv:%d", h.node.kind, h.node.bu(), h.node.bv())
}
