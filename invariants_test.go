// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

import "testing"

// checkForestInvariant asserts spec.md 8 invariant 4:
// numEdges() == Σ deg(v)/2, and numComponents() == numVertices() - numEdges().
func checkForestInvariant(t *testing.T, lf *letterForest) {
	t.Helper()

	degSum := 0
	for v := range lf.Vertices() {
		degSum += lf.Degree(v)
	}
	if degSum%2 != 0 {
		t.Fatalf("sum of degrees %d is odd", degSum)
	}
	if got, want := lf.NumEdges(), degSum/2; got != want {
		t.Errorf("NumEdges() = %d, want Σdeg(v)/2 = %d", got, want)
	}
	if got, want := lf.NumComponents(), lf.NumVertices()-lf.NumEdges(); got != want {
		t.Errorf("NumComponents() = %d, want numVertices-numEdges = %d", got, want)
	}
}

// TestForestInvariantHoldsThroughoutBuildAndTeardown covers spec.md 8
// invariant 4 across a sequence of links and cuts, checking after every
// single operation rather than only at the end.
func TestForestInvariantHoldsThroughoutBuildAndTeardown(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C", "D", "E", "F")
	checkForestInvariant(t, lf)

	// A tree, not merely a path: B additionally branches to F.
	links := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"}, {"B", "F"}}
	for _, e := range links {
		lf.link(t, e[0], e[1], 1)
		checkForestInvariant(t, lf)
	}

	cuts := [][2]string{{"B", "F"}, {"C", "D"}, {"A", "B"}, {"B", "C"}, {"D", "E"}}
	for _, e := range cuts {
		lf.cut(t, e[0], e[1])
		checkForestInvariant(t, lf)
	}

	if got := lf.NumEdges(); got != 0 {
		t.Errorf("NumEdges() after full teardown = %d, want 0", got)
	}
	if got := lf.NumComponents(); got != lf.NumVertices() {
		t.Errorf("NumComponents() after full teardown = %d, want %d", got, lf.NumVertices())
	}
}

// TestCreateDestroyPairing covers spec.md 8 invariant 7: every BASE
// cluster created by a successful Link is destroyed by exactly one
// subsequent Cut. A cut may also replace a BASE by a reoriented copy
// (Destroy for the original, Create for the copy), so each cut is checked
// to destroy exactly one more cluster than it creates.
func TestCreateDestroyPairing(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C", "D", "E")

	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)
	lf.link(t, "C", "D", 1)
	lf.link(t, "D", "E", 1)

	if lf.l.created != 4 {
		t.Fatalf("created = %d after 4 links, want 4", lf.l.created)
	}
	if lf.l.destroyed != 0 {
		t.Fatalf("destroyed = %d after 4 links, want 0", lf.l.destroyed)
	}

	cuts := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"}}
	for _, e := range cuts {
		createdBefore, destroyedBefore := lf.l.created, lf.l.destroyed
		lf.cut(t, e[0], e[1])
		if net := (lf.l.destroyed - destroyedBefore) - (lf.l.created - createdBefore); net != 1 {
			t.Errorf("cut(%s,%s): destroyed minus created = %d, want 1", e[0], e[1], net)
		}
	}

	if lf.l.created != lf.l.destroyed {
		t.Errorf("created = %d, destroyed = %d, want equal after full teardown", lf.l.created, lf.l.destroyed)
	}
}

// TestLinkCutRoundTrip covers spec.md 8 "link(u,v,p); cut(u,v) restores
// the forest to the pre-link state with respect to topology".
func TestLinkCutRoundTrip(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C")
	lf.link(t, "A", "B", 1)

	edgesBefore := lf.NumEdges()
	componentsBefore := lf.NumComponents()
	degABefore := lf.Degree(lf.id("A"))

	lf.link(t, "B", "C", 1)
	lf.cut(t, "B", "C")

	if got := lf.NumEdges(); got != edgesBefore {
		t.Errorf("NumEdges() after round trip = %d, want %d", got, edgesBefore)
	}
	if got := lf.NumComponents(); got != componentsBefore {
		t.Errorf("NumComponents() after round trip = %d, want %d", got, componentsBefore)
	}
	if got := lf.Degree(lf.id("A")); got != degABefore {
		t.Errorf("deg(A) after round trip = %d, want %d", got, degABefore)
	}
	if !lf.IsConnected(lf.id("A"), lf.id("B")) {
		t.Errorf("A-B must still be connected after the unrelated B-C round trip")
	}
	if lf.IsConnected(lf.id("B"), lf.id("C")) {
		t.Errorf("B-C must be disconnected again after cut")
	}
}

// TestReverseIntegrity covers spec.md 8 scenario 6: soft-exposing a path
// in either direction must report boundaries that match the true
// topology, never a stale view through an un-normalized reverse bit.
func TestReverseIntegrity(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C", "D", "E")
	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)
	lf.link(t, "C", "D", 1)
	lf.link(t, "D", "E", 1)

	res, h := lf.ExposeTwo(lf.id("E"), lf.id("A"))
	if res != CommonComponent {
		t.Fatalf("ExposeTwo(E,A) = %v, want CommonComponent", res)
	}
	bu, bv := h.Boundaries()
	if bu != lf.id("E") || bv != lf.id("A") {
		t.Errorf("boundaries after ExposeTwo(E,A) = (%s,%s), want (E,A)", lf.nameOf(bu), lf.nameOf(bv))
	}

	res, h = lf.ExposeTwo(lf.id("A"), lf.id("E"))
	if res != CommonComponent {
		t.Fatalf("ExposeTwo(A,E) = %v, want CommonComponent", res)
	}
	bu, bv = h.Boundaries()
	if bu != lf.id("A") || bv != lf.id("E") {
		t.Errorf("boundaries after ExposeTwo(A,E) = (%s,%s), want (A,E)", lf.nameOf(bu), lf.nameOf(bv))
	}

	// The reversal round trip must not have disturbed any vertex identity
	// or degree bookkeeping: A and E are still the path's endpoints.
	if got := lf.Degree(lf.id("A")); got != 1 {
		t.Errorf("deg(A) after reversal round trip = %d, want 1", got)
	}
	if got := lf.Degree(lf.id("C")); got != 2 {
		t.Errorf("deg(C) after reversal round trip = %d, want 2", got)
	}

	// Select after the reversal round trip must still return a pair of
	// this forest's vertices.
	u, v, ok := lf.SelectTwo(lf.id("E"), lf.id("A"))
	if !ok {
		t.Fatal("SelectTwo(E,A) = false, want true")
	}
	if lf.nameOf(u) == "?" || lf.nameOf(v) == "?" {
		t.Errorf("SelectTwo(E,A) returned an unrecognized vertex pair (%d,%d)", u, v)
	}
}

// TestExposeIdempotent covers spec.md 8 "expose(v); expose(v) is
// idempotent structurally": repeating Expose on the same vertex must
// report the same boundaries both times.
func TestExposeIdempotent(t *testing.T) {
	lf := newLetterForest(t, "A", "B", "C")
	lf.link(t, "A", "B", 1)
	lf.link(t, "B", "C", 1)

	res1, h1 := lf.Expose(lf.id("B"))
	bu1, bv1 := h1.Boundaries()

	res2, h2 := lf.Expose(lf.id("B"))
	bu2, bv2 := h2.Boundaries()

	if res1 != res2 {
		t.Errorf("Expose(B) result changed across repeated calls: %v then %v", res1, res2)
	}
	if bu1 != bu2 || bv1 != bv2 {
		t.Errorf("Expose(B) boundaries changed across repeated calls: (%s,%s) then (%s,%s)",
			lf.nameOf(bu1), lf.nameOf(bv1), lf.nameOf(bu2), lf.nameOf(bv2))
	}
}
