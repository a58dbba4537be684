// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command toptreedemo is a small, fixed scripted walkthrough of the
// toptree engine: build a path, ask for its heaviest edge, cut it, and
// dump the resulting forest. It is the only place in this module that
// imports "log" -- the core package never logs, mirroring the teacher's
// own split between a silent library and a log.Printf-driven cmd/ demo.
package main

import (
	"log"
	"time"

	"github.com/katox/toptree"
)

// edgeInfo is the per-cluster aggregate this demo's Listener maintains:
// weight is only meaningful on a BASE cluster (the edge's own weight);
// maxWeight is the heaviest weight anywhere within the cluster, used by
// SelectQuestion to hunt for the heaviest edge on a path (spec.md 8
// scenario 5).
type edgeInfo struct {
	weight    int
	maxWeight int
}

// weightListener aggregates maxWeight bottom-up through Join and answers
// SelectQuestion by always continuing into the heavier side. nextWeight
// carries the weight for the BASE cluster about to be created by the next
// Link call: Listener.Create has no way to receive caller-supplied data
// directly, so the demo stashes it here immediately before each Link.
type weightListener struct {
	nextWeight int
}

func (l *weightListener) Create(c *toptree.ClusterInfo[edgeInfo], _ toptree.ClusterKind) {
	c.SetValue(edgeInfo{weight: l.nextWeight, maxWeight: l.nextWeight})
}

func (l *weightListener) Destroy(_ *toptree.ClusterInfo[edgeInfo], _ toptree.ClusterKind) {}

func (l *weightListener) Join(parent, a, b *toptree.ClusterInfo[edgeInfo], _ toptree.ConnectionKind) {
	parent.SetValue(edgeInfo{maxWeight: max(maxWeightOf(a), maxWeightOf(b))})
}

func (l *weightListener) Split(_, _, _ *toptree.ClusterInfo[edgeInfo], _ toptree.ConnectionKind) {}

func (l *weightListener) SelectQuestion(a, b *toptree.ClusterInfo[edgeInfo], _ toptree.ConnectionKind) *toptree.ClusterInfo[edgeInfo] {
	if maxWeightOf(a) >= maxWeightOf(b) {
		return a
	}
	return b
}

// maxWeightOf tolerates a nil side, the same relaxed nullability every
// other Listener callback in this engine already accepts.
func maxWeightOf(c *toptree.ClusterInfo[edgeInfo]) int {
	if c == nil {
		return -1
	}
	v, _ := c.Value()
	return v.maxWeight
}

type edge struct {
	from, to string
	weight   int
}

func main() {
	log.SetFlags(log.Lmicroseconds)

	listener := &weightListener{}
	f := toptree.NewForest[string, edgeInfo](listener)

	names := []string{"A", "B", "C", "D", "E"}
	id := make(map[string]toptree.VertexHandle, len(names))
	for _, name := range names {
		id[name] = f.CreateVertex(name)
	}

	edges := []edge{
		{"A", "B", 3},
		{"B", "C", 7},
		{"C", "D", 1},
		{"D", "E", 5},
	}

	ts := time.Now()
	for _, e := range edges {
		listener.nextWeight = e.weight
		if err := f.Link(id[e.from], id[e.to]); err != nil {
			log.Fatalf("link(%s,%s): %v", e.from, e.to, err)
		}
	}
	log.Printf("built path A-B-C-D-E in %v: edges=%d components=%d",
		time.Since(ts), f.NumEdges(), f.NumComponents())

	if err := f.Link(id["A"], id["B"]); err != nil {
		log.Printf("link(A,B) again: %v (expected, edge already exists)", err)
	}

	lo, hi, ok := f.SelectTwo(id["A"], id["E"])
	if ok {
		log.Printf("heaviest edge on A..E: %s-%s", nameOf(id, names, lo), nameOf(id, names, hi))
	}

	ts = time.Now()
	if err := f.Cut(id["C"], id["D"]); err != nil {
		log.Fatalf("cut(C,D): %v", err)
	}
	log.Printf("cut C-D in %v: edges=%d components=%d",
		time.Since(ts), f.NumEdges(), f.NumComponents())

	log.Printf("connected(A,E) after cut: %v", f.IsConnected(id["A"], id["E"]))
	log.Printf("forest dump:\n%s", f.String())
}

// nameOf reverse-looks-up a VertexHandle's name for log output.
func nameOf(id map[string]toptree.VertexHandle, names []string, v toptree.VertexHandle) string {
	for _, n := range names {
		if id[n] == v {
			return n
		}
	}
	return "?"
}
