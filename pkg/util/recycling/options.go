// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

// defaultSpareElements is the number of elements the deque and the linked
// list construct up front when no initial capacity is given.
const defaultSpareElements = 16

type config struct {
	initialCapacity int
}

// Option configures a container at construction time.
type Option func(*config)

// WithInitialCapacity sets the number of elements constructed up front. For
// the array lists these are reserve slots; for the deque and the linked list
// they seed the spare pool. A negative value fails construction with
// ErrIllegalConstruction.
func WithInitialCapacity(n int) Option {
	return func(c *config) {
		c.initialCapacity = n
	}
}

func applyOptions(defaultCapacity int, opts []Option) config {
	c := config{initialCapacity: defaultCapacity}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
