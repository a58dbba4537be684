// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

// ClusterInfo wraps the caller-supplied associative value for one cluster.
// It gates reads/writes with a "local access allowed" flag that the engine
// asserts only while a Listener callback touching this cluster is running,
// or while this cluster is the most recently exposed top cluster. Outside
// that window Value/SetValue return ErrAccessDenied, which is the engine's
// (deliberately blunt) defense against re-entrant calls: a client that
// stashed a *ClusterInfo from a previous callback and tries to read it
// later, after the tree moved on, gets an error instead of silently
// observing stale or inconsistent data.
type ClusterInfo[C any] struct {
	value C

	// localAccessAllowed is asserted by callbacks.go around every
	// Listener call, and by Forest.Expose/ExposeTwo for the cluster they
	// return, and cleared as soon as that window closes.
	localAccessAllowed bool

	// isZST records whether C is a zero-sized type (internal/value.IsZST),
	// computed once per Forest and threaded through by NewClusterInfo
	// rather than recomputed per cluster. dump.go's dumper consults it to
	// omit printing a meaningless "{}" for every cluster.
	isZST bool
}

// NewClusterInfo constructs an empty ClusterInfo, recording whether C is a
// zero-sized type so the debug dumper (dump.go) can skip it. Called from
// Forest.allocNode, the one place a ClusterInfo ever comes into existence.
func NewClusterInfo[C any](isZST bool) *ClusterInfo[C] {
	return &ClusterInfo[C]{isZST: isZST}
}

// Value returns the caller's associative value for this cluster.
// It fails with ErrAccessDenied outside the local-access window (see
// ClusterInfo's doc comment).
func (ci *ClusterInfo[C]) Value() (C, error) {
	if ci == nil || !ci.localAccessAllowed {
		var zero C
		return zero, ErrAccessDenied
	}
	return ci.value, nil
}

// SetValue replaces the caller's associative value for this cluster.
// It fails with ErrAccessDenied outside the local-access window.
func (ci *ClusterInfo[C]) SetValue(v C) error {
	if ci == nil || !ci.localAccessAllowed {
		return ErrAccessDenied
	}
	ci.value = v
	return nil
}

// allow and deny are the engine-internal toggles around a callback or an
// exposed-top-cluster window. They are unexported: only this package may
// grant access.
func (ci *ClusterInfo[C]) allow() { ci.localAccessAllowed = true }
func (ci *ClusterInfo[C]) deny()  { ci.localAccessAllowed = false }

// debugValue returns ci's raw value, bypassing the local-access gate.
// Only dump.go may call this: a diagnostic dumper legitimately needs to
// peek at cluster data that Value() would otherwise deny outside a
// callback window.
func (ci *ClusterInfo[C]) debugValue() C {
	return ci.value
}
