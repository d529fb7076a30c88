// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package recycling provides ordered containers that construct their elements
// once and reuse them forever, for code such as real-time control loops that
// must not allocate in steady state.
//
// Each container is parameterized by an element type E and holds *E values
// produced by a Factory. Removing an element never releases it: the element
// moves to a reserve (the tail of the backing array, or a spare pool) and is
// handed out again, with whatever state it had, by a later add. The Factory
// is only called when a container has to grow beyond every element it ever
// constructed.
//
//   - ArrayList grows without bound.
//   - BoundedArrayList grows up to a fixed ceiling and then fails with
//     ErrResourceExhausted.
//   - PreallocatedList constructs all of its elements up front and never
//     grows.
//   - Deque is a double-ended queue over recycled elements.
//   - LinkedList is a doubly-linked list over pooled nodes, traversed with
//     cursors that detect concurrent structural mutation.
//
// A pointer returned by a container is a handle to one of its slots. It is
// only meaningful until the next operation that may reuse that slot; holding
// on to it across such an operation observes whatever the slot is reused for.
//
// None of the containers are safe for concurrent use.
package recycling
