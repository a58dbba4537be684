// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

import "testing"

// weight is the per-cluster aggregate shared by this package's tests: w is
// only meaningful on a BASE cluster (the edge's own weight, supplied via
// recordingListener.nextWeight immediately before the Link that creates
// it); max is the heaviest w anywhere within the cluster, maintained
// bottom-up through Join exactly as spec.md 8 scenario 5 describes.
type weight struct {
	w, max int
}

// recordingListener is the Listener every test in this package wires a
// Forest to. Beyond maintaining the weight aggregate, it counts every
// callback invocation so tests can check the create/destroy/join/split
// pairing invariant (spec.md 8 invariant 7) and the no-callbacks-on-failure
// guarantee (spec.md 7) directly, without reaching into engine internals.
type recordingListener struct {
	nextWeight int

	created, destroyed, joined, split int
}

func (l *recordingListener) counts() (created, destroyed, joined, split int) {
	return l.created, l.destroyed, l.joined, l.split
}

func (l *recordingListener) Create(c *ClusterInfo[weight], _ ClusterKind) {
	l.created++
	c.SetValue(weight{w: l.nextWeight, max: l.nextWeight})
}

func (l *recordingListener) Destroy(_ *ClusterInfo[weight], _ ClusterKind) {
	l.destroyed++
}

func (l *recordingListener) Join(parent, a, b *ClusterInfo[weight], _ ConnectionKind) {
	l.joined++
	parent.SetValue(weight{max: max(weightMax(a), weightMax(b))})
}

func (l *recordingListener) Split(_, _, _ *ClusterInfo[weight], _ ConnectionKind) {
	l.split++
}

func (l *recordingListener) SelectQuestion(a, b *ClusterInfo[weight], _ ConnectionKind) *ClusterInfo[weight] {
	if weightMax(a) >= weightMax(b) {
		return a
	}
	return b
}

func weightMax(c *ClusterInfo[weight]) int {
	if c == nil {
		return -1
	}
	v, _ := c.Value()
	return v.max
}

// letterForest is a small test fixture: a Forest[string, weight] whose
// vertices are named by single letters ("A", "B", ...), wired to a
// recordingListener.
type letterForest struct {
	*Forest[string, weight]
	l   *recordingListener
	ids map[string]VertexHandle
}

func newLetterForest(t *testing.T, names ...string) *letterForest {
	t.Helper()
	l := &recordingListener{}
	f := NewForest[string, weight](l)
	ids := make(map[string]VertexHandle, len(names))
	for _, name := range names {
		ids[name] = f.CreateVertex(name)
	}
	return &letterForest{Forest: f, l: l, ids: ids}
}

func (lf *letterForest) id(name string) VertexHandle { return lf.ids[name] }

// link links a-b with the given weight, failing the test on error.
func (lf *letterForest) link(t *testing.T, a, b string, w int) {
	t.Helper()
	lf.l.nextWeight = w
	if err := lf.Link(lf.id(a), lf.id(b)); err != nil {
		t.Fatalf("link(%s,%s): %v", a, b, err)
	}
}

// cut cuts a-b, failing the test on error.
func (lf *letterForest) cut(t *testing.T, a, b string) {
	t.Helper()
	if err := lf.Cut(lf.id(a), lf.id(b)); err != nil {
		t.Fatalf("cut(%s,%s): %v", a, b, err)
	}
}

// nameOf reverse-looks-up v's letter name, for assertions on Select's
// returned boundary pair.
func (lf *letterForest) nameOf(v VertexHandle) string {
	for name, id := range lf.ids {
		if id == v {
			return name
		}
	}
	return "?"
}
