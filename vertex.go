// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// VertexHandle identifies a vertex created by Forest.CreateVertex. It is a
// plain index into the forest's internal vertex slice: non-owning, stable
// for the lifetime of the Forest (vertices are never destroyed by the
// engine, matching spec 3 "Lifecycle"), and meaningless across different
// Forest instances.
type VertexHandle int

const invalidVertex VertexHandle = -1

// vertexRecord is the identity of one tree vertex: its caller-supplied
// payload, its degree, and a non-owning handle into the topmost non-rake
// cluster node that currently covers it. vertexRecord.cluster is updated
// by bindVertices (reverse.go) and is a
// weak/back reference exactly like clusterNode.parent/link: never the
// owner of the cluster it points to.
type vertexRecord[V any, C any] struct {
	payload V
	degree  int

	// cluster is nil for an isolated (degree 0) vertex.
	cluster *clusterNode[C]

	// payloadIsZST caches internal/value.IsZST[V], stamped by CreateVertex
	// from the Forest-level cache computed once in NewForest. Consulted
	// by dump.go to omit a meaningless "{}" payload from its output.
	payloadIsZST bool
}

// Payload returns the caller-supplied value associated with v.
//
// Per spec 6, this only succeeds while v's top cluster is a top cluster
// of the forest, i.e. the vertex has been exposed (via Expose, ExposeTwo,
// Link or Cut touching it) and the forest has not been mutated since.
// toptree relaxes this to "always succeeds": the payload is plain data
// attached to the vertex, not reconstructed by callbacks, so there is no
// staleness hazard in returning it at any time. (See DESIGN.md "vertex
// payload access" for the rationale.)
func (f *Forest[V, C]) Payload(v VertexHandle) V {
	return f.vertices[v].payload
}

// SetPayload replaces the caller-supplied value associated with v.
func (f *Forest[V, C]) SetPayload(v VertexHandle, payload V) {
	f.vertices[v].payload = payload
}

// Degree returns the current degree (incident edge count) of v.
func (f *Forest[V, C]) Degree(v VertexHandle) int {
	return f.vertices[v].degree
}
