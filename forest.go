// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

import (
	"cmp"
	"iter"
	"slices"

	"github.com/katox/toptree/internal/arena"
	"github.com/katox/toptree/internal/value"
)

// Options configures a Forest at construction time. There is exactly one
// knob today: whether freed clusterNode values are pooled for reuse
// (internal/arena), mirroring the teacher's own always-nil-safe pool[V]
// design (newPool is cheap to skip when the caller doesn't want it).
type Options struct {
	// NodePooling enables clusterNode recycling via internal/arena.
	// Defaults to true.
	NodePooling bool
}

// WithNodePooling sets Options.NodePooling.
func WithNodePooling(enabled bool) func(*Options) {
	return func(o *Options) { o.NodePooling = enabled }
}

// Forest is the public facade over the Top Tree engine: a forest of
// unrooted trees over vertices of type V, with associative cluster
// information of type C maintained via Listener callbacks.
//
// A Forest is not safe for concurrent use (spec.md 5): every exported
// method must run to completion before another is called, and none may
// be called re-entrantly from inside a Listener callback.
type Forest[V any, C any] struct {
	vertices []vertexRecord[V, C]
	edges    int

	listener Listener[C]

	pool *arena.Pool[*clusterNode[C]]

	// Operation-scoped state (spec.md 4.6, 4.7, 9): deliberately grouped
	// so that every public entry point's first step -- "undo any
	// residual hard-expose or one-vertex-expose from the previous call"
	// -- is a single, obviously total check.
	hardExposeState *hardExposeDescriptor[C]
	oneVertexRoot   *clusterNode[C]
	oneVertexOf     VertexHandle
	inCallback      bool

	// lastExposed is the ClusterInfo most recently opened for local
	// access by TopCluster/Expose/ExposeTwo; undoPending closes it before
	// the next public operation runs (spec.md 4.8 "Local access").
	lastExposed *ClusterInfo[C]

	// vertexPayloadIsZST and clusterValueIsZST cache internal/value.IsZST
	// for V and C respectively, computed once here rather than on every
	// CreateVertex/allocNode call. CreateVertex stamps the former onto
	// each vertexRecord it creates; allocNode passes the latter to
	// NewClusterInfo for every ClusterInfo it allocates. Both exist so
	// dump.go's dumper can omit a meaningless "{}" payload/value.
	vertexPayloadIsZST bool
	clusterValueIsZST  bool
}

// NewForest creates an empty forest. listener must not be nil: every
// structural mutation routes through it.
func NewForest[V any, C any](listener Listener[C], opts ...func(*Options)) *Forest[V, C] {
	if listener == nil {
		panic("toptree: NewForest requires a non-nil Listener")
	}

	o := Options{NodePooling: true}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Forest[V, C]{
		listener:           listener,
		oneVertexOf:        invalidVertex,
		vertexPayloadIsZST: value.IsZST[V](),
		clusterValueIsZST:  value.IsZST[C](),
	}
	if o.NodePooling {
		f.pool = arena.New(func() *clusterNode[C] { return new(clusterNode[C]) })
	}
	return f
}

// CreateVertex adds a new, isolated (degree 0) vertex carrying payload and
// returns a handle to it. Vertices are never destroyed by the engine
// (spec.md 3 "Lifecycle").
func (f *Forest[V, C]) CreateVertex(payload V) VertexHandle {
	f.vertices = append(f.vertices, vertexRecord[V, C]{
		payload:      payload,
		payloadIsZST: f.vertexPayloadIsZST,
	})
	return VertexHandle(len(f.vertices) - 1)
}

// NumVertices returns the number of vertices ever created.
func (f *Forest[V, C]) NumVertices() int { return len(f.vertices) }

// Vertices iterates every vertex handle ever created, in ascending handle
// order. Ranging with "for v := range f.Vertices()" is the idiomatic way
// to walk every vertex without holding a slice copy; dump.go's dumper
// uses it to enumerate components deterministically.
func (f *Forest[V, C]) Vertices() iter.Seq[VertexHandle] {
	return func(yield func(VertexHandle) bool) {
		for _, v := range f.sortedVertexIDs() {
			if !yield(v) {
				return
			}
		}
	}
}

// sortedVertexIDs returns every vertex handle ever created, sorted
// ascending. VertexHandle is already a dense, creation-ordered index, so
// this is a stable no-op sort in practice; it exists as the single
// well-defined iteration order dump.go (and any caller wanting
// deterministic output) should use rather than assuming slice order.
func (f *Forest[V, C]) sortedVertexIDs() []VertexHandle {
	ids := make([]VertexHandle, len(f.vertices))
	for i := range ids {
		ids[i] = VertexHandle(i)
	}
	slices.SortFunc(ids, func(a, b VertexHandle) int { return cmp.Compare(a, b) })
	return ids
}

// NumEdges returns the current edge count.
func (f *Forest[V, C]) NumEdges() int { return f.edges }

// NumComponents returns the number of connected components: vertices minus
// edges, since the structure is always a forest (spec.md 3).
func (f *Forest[V, C]) NumComponents() int { return len(f.vertices) - f.edges }

// NumNodesAllocated and NumNodesLive expose the arena pool's bookkeeping
// counters, mirroring the teacher's pool[V].totalAllocated/currentLive
// (useful for clients diagnosing cluster-node churn, not load bearing).
func (f *Forest[V, C]) NumNodesAllocated() int64 { return f.pool.TotalAllocated() }
func (f *Forest[V, C]) NumNodesLive() int64      { return f.pool.Live() }

// allocNode returns a zeroed clusterNode of the given kind, recycled from
// the arena pool when pooling is enabled.
func (f *Forest[V, C]) allocNode(kind nodeKind) *clusterNode[C] {
	n, id := f.pool.Alloc()
	if n == nil {
		n = new(clusterNode[C])
	}
	n.id = id
	n.kind = kind
	n.state = stateNew
	n.info = NewClusterInfo[C](f.clusterValueIsZST)
	if kind == nodeCompress {
		n.extras = &compressExtras[C]{
			compressedVertex: invalidVertex,
			leftComposed:     NewClusterInfo[C](f.clusterValueIsZST),
			rightComposed:    NewClusterInfo[C](f.clusterValueIsZST),
		}
	}
	return n
}

// freeNode returns n's memory to the arena pool. It must only be called
// once n has been fully detached (no live parent/link/boundary references
// remain) and its Destroy/Split callbacks have already fired.
func (f *Forest[V, C]) freeNode(n *clusterNode[C]) {
	if n == nil {
		return
	}
	id := n.id
	f.pool.Release(n, id, func(n *clusterNode[C]) {
		*n = clusterNode[C]{}
	})
}

// ClusterHandle is an opaque, non-owning reference to a cluster, returned
// by TopCluster/Expose/ExposeTwo. It is only valid until the next
// structural mutation of the forest.
type ClusterHandle[C any] struct {
	node *clusterNode[C]
}

// Kind reports whether h represents a path or a point cluster.
func (h *ClusterHandle[C]) Kind() ClusterKind {
	if h == nil || h.node == nil {
		return PathCluster
	}
	if h.node.isRake() {
		return PointCluster
	}
	if h.node.isHardRake() {
		return PathCluster
	}
	return PathCluster
}

// Boundaries returns the (up to two) boundary vertices of h. A pure RAKE
// cluster has only one boundary vertex, returned as (v, v).
func (h *ClusterHandle[C]) Boundaries() (VertexHandle, VertexHandle) {
	if h.node.isRake() {
		return h.node.bv(), h.node.bv()
	}
	return h.node.bu(), h.node.bv()
}

// Info returns the ClusterInfo wrapping h's caller-supplied value.
func (h *ClusterHandle[C]) Info() *ClusterInfo[C] {
	return h.node.info
}

// TopCluster returns a handle to the top cluster covering v, or (nil,
// false) if v is isolated (degree 0). It performs no restructuring.
func (f *Forest[V, C]) TopCluster(v VertexHandle) (*ClusterHandle[C], bool) {
	f.undoPending()

	vr := &f.vertices[v]
	if vr.cluster == nil {
		return nil, false
	}

	n := vr.cluster
	for !n.isTop() {
		n = n.upLink()
	}
	f.exposeInfo(n.info)
	return &ClusterHandle[C]{node: n}, true
}

// exposeInfo opens the local-access window for c, closing whatever window
// a previous exposeInfo call opened.
func (f *Forest[V, C]) exposeInfo(c *ClusterInfo[C]) {
	if f.lastExposed != nil {
		f.lastExposed.deny()
	}
	c.allow()
	f.lastExposed = c
}

// IsConnected reports whether u and v lie in the same component.
// It is a thin wrapper around ExposeTwo, discarding the resulting cluster.
func (f *Forest[V, C]) IsConnected(u, v VertexHandle) bool {
	res, _ := f.ExposeTwo(u, v)
	return res == CommonComponent || res == OneVertex
}

// undoPending undoes any residual hard-expose or one-vertex-expose left
// over from the previous public call (spec.md 4.6: "Every public
// operation begins with: if hardExposed -> undoHardExpose(); if
// oneVertexExposed -> undoOneVertexExpose()").
func (f *Forest[V, C]) undoPending() {
	if f.inCallback {
		panic("toptree: re-entrant call into Forest from inside a Listener callback")
	}
	if f.lastExposed != nil {
		f.lastExposed.deny()
		f.lastExposed = nil
	}
	if f.hardExposeState != nil {
		f.undoHardExpose()
	}
	if f.oneVertexRoot != nil {
		f.undoOneVertexExpose()
	}
}
