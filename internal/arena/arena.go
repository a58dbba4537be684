// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package arena provides a type-safe, poolable slot allocator.
//
// toptree's engine constantly allocates and frees clusterNode values as
// the forest restructures (clone-new duplicates an ancestor on every
// splay step; a rebuild's old subgraph is entirely discarded once its
// Destroy/Split callbacks have fired). Package arena gives each allocation
// a stable small integer id (spec.md 9: "An arena of nodes with
// generational indices") and tracks which ids are currently live in a
// popcount-compressed bitset, the same presence-tracking idiom the
// teacher's own internal/bitset package uses for trie-node children
// (prefixCBTree.indexes, childTree.addrs) -- here repurposed from tracking
// child presence to tracking arena-slot occupancy.
//
// This is an internal package used by the toptree data structure
// implementation.
package arena

import (
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// Pool is a type-safe wrapper around sync.Pool, specialized for managing
// reusable *T instances together with small stable integer ids.
//
// Pool is safe to use with a nil receiver: every method degrades to a
// plain allocation/no-op, so a Forest can unconditionally hold a *Pool[T]
// field and simply not construct one when pooling is disabled.
type Pool[T any] struct {
	sync.Pool

	occupied bitset.BitSet
	free     []int
	nextID   int

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

// New creates a Pool whose sync.Pool.New calls newFn to manufacture a
// fresh *T when no reusable value is available.
func New[T any](newFn func() T) *Pool[T] {
	p := &Pool[T]{}
	p.Pool.New = func() any {
		p.totalAllocated.Add(1)
		return newFn()
	}
	return p
}

// Alloc returns a *T (freshly made or recycled) together with a slot id
// that is unique among currently-live allocations from this Pool.
func (p *Pool[T]) Alloc() (T, int) {
	if p == nil {
		var zero T
		return zero, 0
	}

	var id int
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		id = p.nextID
		p.nextID++
	}
	p.occupied.Set(uint(id))
	p.currentLive.Add(1)

	v, _ := p.Pool.Get().(T)
	return v, id
}

// Release returns obj (whose slot is id) to the pool for reuse, after
// calling reset(obj) to clear any state that must not leak into the next
// allocation that reuses this memory.
func (p *Pool[T]) Release(obj T, id int, reset func(T)) {
	if p == nil {
		return
	}

	reset(obj)
	p.Pool.Put(obj)
	p.occupied.Clear(uint(id))
	p.free = append(p.free, id)
	p.currentLive.Add(-1)
}

// TotalAllocated returns the number of *T values ever manufactured by
// newFn (i.e. not counting recycled Gets).
func (p *Pool[T]) TotalAllocated() int64 {
	if p == nil {
		return 0
	}
	return p.totalAllocated.Load()
}

// Live returns the number of allocations currently outstanding (Alloc'd
// but not yet Release'd).
func (p *Pool[T]) Live() int64 {
	if p == nil {
		return 0
	}
	return p.currentLive.Load()
}

// OccupiedSlots returns the number of slot ids currently in use. It
// should always equal Live(); it is exposed separately because it is
// computed from the occupancy bitset rather than the atomic counter, and
// the two serve as a cheap cross-check against each other in tests.
func (p *Pool[T]) OccupiedSlots() int {
	if p == nil {
		return 0
	}
	return int(p.occupied.Count())
}
