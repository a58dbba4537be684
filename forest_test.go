// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

import (
	"strings"
	"testing"
)

// TestLinkBuildsPath covers spec.md 8 scenario 1: a five-vertex path,
// expected to report 4 edges, 1 component, and CommonComponent with
// boundaries {A,E} for the two endpoints.
func TestLinkBuildsPath(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C", "D", "E")

	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)
	lf.link(t, "C", "D", 1)
	lf.link(t, "D", "E", 1)

	if got := lf.NumEdges(); got != 4 {
		t.Errorf("NumEdges() = %d, want 4", got)
	}
	if got := lf.NumComponents(); got != 1 {
		t.Errorf("NumComponents() = %d, want 1", got)
	}

	res, h := lf.ExposeTwo(lf.id("A"), lf.id("E"))
	if res != CommonComponent {
		t.Fatalf("ExposeTwo(A,E) = %v, want CommonComponent", res)
	}
	bu, bv := h.Boundaries()
	if bu != lf.id("A") || bv != lf.id("E") {
		t.Errorf("boundaries = (%s,%s), want (A,E)", lf.nameOf(bu), lf.nameOf(bv))
	}
}

// TestCutYTree covers spec.md 8 scenario 2: B has degree 3 (A,C,D);
// cutting B-D must succeed, leaving 2 edges, deg(D)=0, 2 components.
func TestCutYTree(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C", "D")

	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)
	lf.link(t, "B", "D", 1)

	if got := lf.Degree(lf.id("B")); got != 3 {
		t.Fatalf("deg(B) = %d, want 3", got)
	}

	lf.cut(t, "B", "D")

	if got := lf.NumEdges(); got != 2 {
		t.Errorf("NumEdges() = %d, want 2", got)
	}
	if got := lf.Degree(lf.id("D")); got != 0 {
		t.Errorf("deg(D) = %d, want 0", got)
	}
	if got := lf.NumComponents(); got != 2 {
		t.Errorf("NumComponents() = %d, want 2", got)
	}
	if !lf.IsConnected(lf.id("A"), lf.id("C")) {
		t.Errorf("A and C should still be connected through B")
	}
	if lf.IsConnected(lf.id("B"), lf.id("D")) {
		t.Errorf("B and D should no longer be connected")
	}
}

// TestDisconnectionCheck covers spec.md 8 scenario 3: A-B-C and D-E are
// separate components until explicitly linked.
func TestDisconnectionCheck(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C", "D", "E")

	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)
	lf.link(t, "D", "E", 1)

	if res, _ := lf.ExposeTwo(lf.id("A"), lf.id("E")); res != DifferentComponents {
		t.Fatalf("ExposeTwo(A,E) = %v, want DifferentComponents", res)
	}

	lf.link(t, "A", "E", 1)

	if got := lf.NumComponents(); got != 1 {
		t.Errorf("NumComponents() after merge = %d, want 1", got)
	}
	if res, _ := lf.ExposeTwo(lf.id("A"), lf.id("E")); res != CommonComponent {
		t.Errorf("ExposeTwo(A,E) after link = %v, want CommonComponent", res)
	}
}

// TestDuplicateLinkRejected covers spec.md 8 scenario 4: linking an
// already-present edge fails with ErrAlreadyConnected and performs no
// callbacks, leaving the forest exactly as it was (spec.md 7).
func TestDuplicateLinkRejected(t *testing.T) {
	lf := newLetterForest(t, "A", "B")
	lf.link(t, "A", "B", 1)

	before := lf.l.created
	beforeJoined, beforeDestroyed, beforeSplit := lf.l.joined, lf.l.destroyed, lf.l.split

	err := lf.Link(lf.id("A"), lf.id("B"))
	if err != ErrAlreadyConnected {
		t.Fatalf("Link(A,B) again = %v, want ErrAlreadyConnected", err)
	}

	if lf.l.created != before {
		t.Errorf("Create fired %d times on a failing Link, want 0 additional", lf.l.created-before)
	}
	if lf.l.joined != beforeJoined {
		t.Errorf("Join fired %d times on a failing Link, want 0 additional", lf.l.joined-beforeJoined)
	}
	if lf.l.destroyed != beforeDestroyed {
		t.Errorf("Destroy fired %d times on a failing Link, want 0 additional", lf.l.destroyed-beforeDestroyed)
	}
	if lf.l.split != beforeSplit {
		t.Errorf("Split fired %d times on a failing Link, want 0 additional", lf.l.split-beforeSplit)
	}

	if got := lf.NumEdges(); got != 1 {
		t.Errorf("NumEdges() after rejected duplicate link = %d, want 1", got)
	}
	if got := lf.Degree(lf.id("A")); got != 1 {
		t.Errorf("deg(A) after rejected duplicate link = %d, want 1", got)
	}
}

func TestLinkSelfLoop(t *testing.T) {
	lf := newLetterForest(t, "A")
	if err := lf.Link(lf.id("A"), lf.id("A")); err != ErrSelfLoop {
		t.Fatalf("Link(A,A) = %v, want ErrSelfLoop", err)
	}
}

func TestCutNoSuchEdge(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C")
	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)

	if err := lf.Cut(lf.id("A"), lf.id("C")); err != ErrNoSuchEdge {
		t.Fatalf("Cut(A,C) = %v, want ErrNoSuchEdge", err)
	}
	if err := lf.Cut(lf.id("A"), lf.id("A")); err != ErrNoSuchEdge {
		t.Fatalf("Cut(A,A) = %v, want ErrNoSuchEdge", err)
	}
}

// TestVerticesIteratesInHandleOrder exercises Vertices()/sortedVertexIDs,
// the iter.Seq wiring dump.go's dumper relies on for deterministic output.
func TestVerticesIteratesInHandleOrder(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C")

	var got []VertexHandle
	for v := range lf.Vertices() {
		got = append(got, v)
	}

	want := []VertexHandle{lf.id("A"), lf.id("B"), lf.id("C")}
	if len(got) != len(want) {
		t.Fatalf("Vertices() yielded %d handles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vertices()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestVerticesEarlyStop exercises the yield-false early-exit path of
// Vertices()'s iter.Seq.
func TestVerticesEarlyStop(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C")

	n := 0
	for range lf.Vertices() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break visited %d vertices, want 1", n)
	}
}

// TestStringDump exercises dump.go's Forest.String, checking that it
// prints both the linked component and the isolated vertex, and -- since
// C here is not a zero-sized type -- that cluster values are printed.
func TestStringDump(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C")
	lf.link(t, "A", "B", 5)

	out := lf.String()
	if out == "" {
		t.Fatal("String() returned empty output")
	}
	if !strings.Contains(out, "[COMPONENT]") {
		t.Errorf("String() missing [COMPONENT] section:\n%s", out)
	}
	if !strings.Contains(out, "[SINGLE]") {
		t.Errorf("String() missing [SINGLE] section for isolated C:\n%s", out)
	}
	if !strings.Contains(out, "value:") {
		t.Errorf("String() should print cluster values when C is not a ZST:\n%s", out)
	}
}
