// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import "github.com/cockroachdb/errors"

// Cursor walks a LinkedList in one direction, copying values out with the
// list's CopyFunc. A cursor is valid from its creation or last Reset until the
// next structural mutation of the list; after that HasNext and Next fail with
// ErrConcurrentMutation until Reset is called.
//
// Any number of cursors may be open on a list at once.
type Cursor[E any] struct {
	list    *LinkedList[E]
	reverse bool

	next *node[E]
	// generation is the list generation the cursor was positioned at.
	generation uint64
}

// Reset positions the cursor on the current first element (last, for a
// backward cursor) and makes it valid again.
func (c *Cursor[E]) Reset() {
	if c.reverse {
		c.next = c.list.last
	} else {
		c.next = c.list.first
	}
	c.generation = c.list.generation
}

func (c *Cursor[E]) checkValid() error {
	if c.generation == c.list.generation {
		return nil
	}
	return errors.Wrapf(ErrConcurrentMutation,
		"cursor positioned at generation %d, list is at generation %d after %s",
		c.generation, c.list.generation, c.list.lastMutation)
}

// HasNext returns whether Next has an element to produce.
func (c *Cursor[E]) HasNext() (bool, error) {
	if err := c.checkValid(); err != nil {
		return false, err
	}
	return c.next != nil, nil
}

// Next copies the element under the cursor into out, unless out is nil, and
// advances the cursor.
func (c *Cursor[E]) Next(out *E) error {
	if err := c.checkValid(); err != nil {
		return err
	}
	if c.next == nil {
		return ErrNoSuchElement
	}
	if out != nil {
		c.list.copier(out, c.next.element)
	}
	if c.reverse {
		c.next = c.next.prev
	} else {
		c.next = c.next.next
	}
	return nil
}
