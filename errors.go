// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package toptree

import "errors"

// Sentinel errors returned by the public operations. These are the only
// error values a well-behaved caller ever observes; every other failure
// (a stale handle, an invariant violation) is a programmer error and
// panics instead, matching the teacher's own split between recoverable
// errors.New/fmt.Errorf results and panics for "this cannot legitimately
// happen" conditions.
var (
	// ErrSelfLoop is returned by Link when u and v are the same vertex.
	ErrSelfLoop = errors.New("toptree: self loop")

	// ErrAlreadyConnected is returned by Link when u and v are already in
	// the same component, so linking them would create a cycle.
	ErrAlreadyConnected = errors.New("toptree: already connected")

	// ErrNoSuchEdge is returned by Cut when there is no edge between u
	// and v.
	ErrNoSuchEdge = errors.New("toptree: no such edge")

	// ErrInvalidHint is returned by the hinted Link overloads when the
	// hint vertex does not share its anchor's component.
	ErrInvalidHint = errors.New("toptree: invalid hint")

	// ErrAccessDenied is returned by the ClusterInfo accessors
	// when called outside the window in which the engine has asserted
	// "local access allowed" (i.e. outside of a Listener callback, or on
	// a handle that is not the top cluster most recently exposed).
	ErrAccessDenied = errors.New("toptree: access denied")
)
