// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/buildutil"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/ring"
)

// Deque is a double-ended queue of recycled elements. Next to the live
// sequence it keeps a stack of spare elements: removing an element pushes it
// onto the stack and adding pops the most recently removed one, so the Factory
// is only called when the stack is empty.
//
// External data enters the deque through the From variants of the add
// operations, which copy the caller's value into a recycled element with the
// CopyFunc; the deque never keeps a pointer it did not construct.
//
// Elements returned by the remove and poll operations remain owned by the
// deque. They are already on the spare stack and will be overwritten by a
// subsequent add.
//
// The poll operations report an empty deque with a false second result
// instead of an error, so polling loops need not construct errors.
type Deque[E any] struct {
	live   ring.Buffer[*E]
	spares []*E

	factory Factory[E]
	copier  CopyFunc[E]
	// allocated counts every element the factory produced.
	allocated int
}

// NewDeque returns an empty Deque. Unless WithInitialCapacity says
// otherwise, 16 spare elements are constructed up front.
func NewDeque[E any](f Factory[E], c CopyFunc[E], opts ...Option) (*Deque[E], error) {
	cfg := applyOptions(defaultSpareElements, opts)
	if f == nil {
		return nil, illegalConstruction("nil element factory")
	}
	if c == nil {
		return nil, illegalConstruction("nil copy function")
	}
	if cfg.initialCapacity < 0 {
		return nil, illegalConstruction("illegal capacity: %d", cfg.initialCapacity)
	}
	d := &Deque[E]{
		live:    ring.MakeBuffer[*E](cfg.initialCapacity),
		spares:  make([]*E, 0, cfg.initialCapacity),
		factory: f,
		copier:  c,
	}
	for i := 0; i < cfg.initialCapacity; i++ {
		e := f()
		if e == nil {
			return nil, illegalConstruction("element factory returned nil for element %d", i)
		}
		d.spares = append(d.spares, e)
	}
	d.allocated = cfg.initialCapacity
	return d, nil
}

// Len returns the number of live elements.
func (d *Deque[E]) Len() int {
	return d.live.Len()
}

// Empty returns whether there are no live elements.
func (d *Deque[E]) Empty() bool {
	return d.live.Len() == 0
}

// Spares returns the number of elements waiting on the spare stack.
func (d *Deque[E]) Spares() int {
	return len(d.spares)
}

// Allocated returns the number of elements the deque constructed so far.
func (d *Deque[E]) Allocated() int {
	return d.allocated
}

func (d *Deque[E]) takeSpare() *E {
	if n := len(d.spares); n > 0 {
		e := d.spares[n-1]
		d.spares[n-1] = nil
		d.spares = d.spares[:n-1]
		return e
	}
	e := d.factory()
	if e == nil {
		panic(brokenFactory(d.allocated))
	}
	d.allocated++
	return e
}

func (d *Deque[E]) release(e *E) *E {
	d.spares = append(d.spares, e)
	d.maybeAssertInvariants()
	return e
}

// AddFirst pushes a recycled element to the front and returns it. Its
// contents are whatever its previous use left behind.
func (d *Deque[E]) AddFirst() *E {
	e := d.takeSpare()
	d.live.AddFirst(e)
	return e
}

// AddLast pushes a recycled element to the back and returns it. Its contents
// are whatever its previous use left behind.
func (d *Deque[E]) AddLast() *E {
	e := d.takeSpare()
	d.live.AddLast(e)
	return e
}

// AddFirstFrom copies v into a recycled element pushed to the front.
func (d *Deque[E]) AddFirstFrom(v *E) {
	e := d.takeSpare()
	d.copier(e, v)
	d.live.AddFirst(e)
}

// AddLastFrom copies v into a recycled element pushed to the back.
func (d *Deque[E]) AddLastFrom(v *E) {
	e := d.takeSpare()
	d.copier(e, v)
	d.live.AddLast(e)
}

// Add is AddLastFrom.
func (d *Deque[E]) Add(v *E) {
	d.AddLastFrom(v)
}

// Push is AddFirstFrom, for stack-style use with Pop.
func (d *Deque[E]) Push(v *E) {
	d.AddFirstFrom(v)
}

// PollFirst removes and returns the first element, or returns false if the
// deque is empty.
func (d *Deque[E]) PollFirst() (*E, bool) {
	if d.live.Len() == 0 {
		return nil, false
	}
	return d.release(d.live.PopFirst()), true
}

// PollLast removes and returns the last element, or returns false if the
// deque is empty.
func (d *Deque[E]) PollLast() (*E, bool) {
	if d.live.Len() == 0 {
		return nil, false
	}
	return d.release(d.live.PopLast()), true
}

// Poll is PollFirst.
func (d *Deque[E]) Poll() (*E, bool) {
	return d.PollFirst()
}

// RemoveFirst removes and returns the first element. It fails with
// ErrEmptyContainer if the deque is empty.
func (d *Deque[E]) RemoveFirst() (*E, error) {
	e, ok := d.PollFirst()
	if !ok {
		return nil, errors.Wrap(ErrEmptyContainer, "cannot remove first element")
	}
	return e, nil
}

// RemoveLast removes and returns the last element. It fails with
// ErrEmptyContainer if the deque is empty.
func (d *Deque[E]) RemoveLast() (*E, error) {
	e, ok := d.PollLast()
	if !ok {
		return nil, errors.Wrap(ErrEmptyContainer, "cannot remove last element")
	}
	return e, nil
}

// Remove is RemoveFirst.
func (d *Deque[E]) Remove() (*E, error) {
	return d.RemoveFirst()
}

// Pop is RemoveFirst, for stack-style use with Push.
func (d *Deque[E]) Pop() (*E, error) {
	return d.RemoveFirst()
}

// PeekFirst returns the first element without removing it.
func (d *Deque[E]) PeekFirst() (*E, bool) {
	if d.live.Len() == 0 {
		return nil, false
	}
	return d.live.GetFirst(), true
}

// PeekLast returns the last element without removing it.
func (d *Deque[E]) PeekLast() (*E, bool) {
	if d.live.Len() == 0 {
		return nil, false
	}
	return d.live.GetLast(), true
}

// Get returns the element at position pos, counting from the front.
func (d *Deque[E]) Get(pos int) (*E, error) {
	if pos < 0 || pos >= d.live.Len() {
		return nil, indexOutOfRange(pos, d.live.Len())
	}
	return d.live.Get(pos), nil
}

// Clear moves every live element to the spare stack.
func (d *Deque[E]) Clear() {
	for d.live.Len() > 0 {
		d.spares = append(d.spares, d.live.PopFirst())
	}
	d.live.Reset()
	d.maybeAssertInvariants()
}

// SafeFormat implements the redact.SafeFormatter interface.
func (d *Deque[E]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeRune('[')
	for i, n := 0, d.live.Len(); i < n; i++ {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(*d.live.Get(i))
	}
	w.SafeRune(']')
}

func (d *Deque[E]) String() string {
	return redact.StringWithoutMarkers(d)
}

// verify checks that every constructed element is either live or spare.
func (d *Deque[E]) verify() error {
	if n := d.live.Len() + len(d.spares); n != d.allocated {
		return errors.AssertionFailedf(
			"%d live and %d spare elements, %d constructed", d.live.Len(), len(d.spares), d.allocated)
	}
	return nil
}

func (d *Deque[E]) maybeAssertInvariants() {
	if !buildutil.Invariants {
		return
	}
	if err := d.verify(); err != nil {
		panic(err)
	}
}
