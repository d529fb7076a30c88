// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package recycling

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/buildutil"
)

// node is a pooled list node. Its element is constructed together with the
// node and lives as long as the list.
type node[E any] struct {
	element    *E
	prev, next *node[E]
}

// mutation names the structural change that last bumped a list's generation.
type mutation uint8

const (
	mutationNone mutation = iota
	mutationAddFirst
	mutationAddLast
	mutationRemoveFirst
	mutationRemoveLast
	mutationClear
)

var mutationNames = [...]redact.SafeString{
	mutationNone:        "none",
	mutationAddFirst:    "AddFirst",
	mutationAddLast:     "AddLast",
	mutationRemoveFirst: "RemoveFirst",
	mutationRemoveLast:  "RemoveLast",
	mutationClear:       "Clear",
}

// SafeValue implements the redact.SafeValue interface.
func (m mutation) SafeValue() {}

func (m mutation) String() string {
	return string(mutationNames[m])
}

// LinkedList is a doubly-linked list whose nodes come from a free pool. Values
// are copied in and out with the CopyFunc, so callers never hold a pointer
// into the list.
//
// Traversal goes through cursors obtained from ForwardCursor and
// BackwardCursor. Every structural mutation advances the list's generation;
// a cursor created or reset at an older generation fails with
// ErrConcurrentMutation instead of walking a list that changed under it.
type LinkedList[E any] struct {
	first, last *node[E]
	size        int
	// free is a stack of unlinked nodes.
	free []*node[E]

	factory Factory[E]
	copier  CopyFunc[E]
	// allocated counts every node the list constructed.
	allocated int

	generation   uint64
	lastMutation mutation
}

// NewLinkedList returns an empty LinkedList. Unless WithInitialCapacity says
// otherwise, 16 nodes are constructed up front.
func NewLinkedList[E any](f Factory[E], c CopyFunc[E], opts ...Option) (*LinkedList[E], error) {
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
	l := &LinkedList[E]{
		free:    make([]*node[E], 0, cfg.initialCapacity),
		factory: f,
		copier:  c,
	}
	for i := 0; i < cfg.initialCapacity; i++ {
		e := f()
		if e == nil {
			return nil, illegalConstruction("element factory returned nil for node %d", i)
		}
		l.free = append(l.free, &node[E]{element: e})
	}
	l.allocated = cfg.initialCapacity
	return l, nil
}

// Len returns the number of elements in the list.
func (l *LinkedList[E]) Len() int {
	return l.size
}

// Empty returns whether the list has no elements.
func (l *LinkedList[E]) Empty() bool {
	return l.first == nil
}

// Pooled returns the number of nodes waiting in the free pool.
func (l *LinkedList[E]) Pooled() int {
	return len(l.free)
}

// Allocated returns the number of nodes the list constructed so far.
func (l *LinkedList[E]) Allocated() int {
	return l.allocated
}

func (l *LinkedList[E]) mutate(m mutation) {
	l.generation++
	l.lastMutation = m
}

func (l *LinkedList[E]) acquire() *node[E] {
	if n := len(l.free); n > 0 {
		nd := l.free[n-1]
		l.free[n-1] = nil
		l.free = l.free[:n-1]
		return nd
	}
	e := l.factory()
	if e == nil {
		panic(brokenFactory(l.allocated))
	}
	l.allocated++
	return &node[E]{element: e}
}

func (l *LinkedList[E]) release(nd *node[E]) {
	nd.prev, nd.next = nil, nil
	l.free = append(l.free, nd)
}

// AddFirst copies v into a pooled node linked in at the front.
func (l *LinkedList[E]) AddFirst(v *E) {
	l.mutate(mutationAddFirst)
	nd := l.acquire()
	l.copier(nd.element, v)
	nd.next = l.first
	if l.first == nil {
		l.last = nd
	} else {
		l.first.prev = nd
	}
	l.first = nd
	l.size++
	l.maybeAssertInvariants()
}

// AddLast copies v into a pooled node linked in at the back.
func (l *LinkedList[E]) AddLast(v *E) {
	l.mutate(mutationAddLast)
	nd := l.acquire()
	l.copier(nd.element, v)
	nd.prev = l.last
	if l.last == nil {
		l.first = nd
	} else {
		l.last.next = nd
	}
	l.last = nd
	l.size++
	l.maybeAssertInvariants()
}

// RemoveFirst unlinks the first element, copying it into out unless out is
// nil. It fails with ErrEmptyContainer if the list is empty.
func (l *LinkedList[E]) RemoveFirst(out *E) error {
	if l.first == nil {
		return errors.Wrap(ErrEmptyContainer, "cannot remove first element")
	}
	l.mutate(mutationRemoveFirst)
	nd := l.first
	if out != nil {
		l.copier(out, nd.element)
	}
	l.first = nd.next
	if l.first == nil {
		l.last = nil
	} else {
		l.first.prev = nil
	}
	l.release(nd)
	l.size--
	l.maybeAssertInvariants()
	return nil
}

// RemoveLast unlinks the last element, copying it into out unless out is
// nil. It fails with ErrEmptyContainer if the list is empty.
func (l *LinkedList[E]) RemoveLast(out *E) error {
	if l.last == nil {
		return errors.Wrap(ErrEmptyContainer, "cannot remove last element")
	}
	l.mutate(mutationRemoveLast)
	nd := l.last
	if out != nil {
		l.copier(out, nd.element)
	}
	l.last = nd.prev
	if l.last == nil {
		l.first = nil
	} else {
		l.last.next = nil
	}
	l.release(nd)
	l.size--
	l.maybeAssertInvariants()
	return nil
}

// PeekFirst copies the first element into out unless out is nil. It fails
// with ErrEmptyContainer if the list is empty.
func (l *LinkedList[E]) PeekFirst(out *E) error {
	if l.first == nil {
		return errors.Wrap(ErrEmptyContainer, "cannot peek first element")
	}
	if out != nil {
		l.copier(out, l.first.element)
	}
	return nil
}

// PeekLast copies the last element into out unless out is nil. It fails
// with ErrEmptyContainer if the list is empty.
func (l *LinkedList[E]) PeekLast(out *E) error {
	if l.last == nil {
		return errors.Wrap(ErrEmptyContainer, "cannot peek last element")
	}
	if out != nil {
		l.copier(out, l.last.element)
	}
	return nil
}

// Clear returns every node to the free pool.
func (l *LinkedList[E]) Clear() {
	l.mutate(mutationClear)
	for nd := l.first; nd != nil; {
		next := nd.next
		l.release(nd)
		nd = next
	}
	l.first, l.last = nil, nil
	l.size = 0
	l.maybeAssertInvariants()
}

// ForwardCursor returns a cursor walking the list from first to last.
func (l *LinkedList[E]) ForwardCursor() *Cursor[E] {
	c := &Cursor[E]{list: l}
	c.Reset()
	return c
}

// BackwardCursor returns a cursor walking the list from last to first.
func (l *LinkedList[E]) BackwardCursor() *Cursor[E] {
	c := &Cursor[E]{list: l, reverse: true}
	c.Reset()
	return c
}

// SafeFormat implements the redact.SafeFormatter interface.
func (l *LinkedList[E]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeRune('[')
	for nd := l.first; nd != nil; nd = nd.next {
		if nd != l.first {
			w.SafeString(", ")
		}
		w.Print(*nd.element)
	}
	w.SafeRune(']')
}

func (l *LinkedList[E]) String() string {
	return redact.StringWithoutMarkers(l)
}

// verify checks the links of the live nodes and that every constructed node
// is either live or pooled, never both.
func (l *LinkedList[E]) verify() error {
	live := 0
	var prev *node[E]
	for nd := l.first; nd != nil; nd = nd.next {
		if nd.prev != prev {
			return errors.AssertionFailedf("node %d has a broken back link", live)
		}
		prev = nd
		live++
		if live > l.allocated {
			return errors.AssertionFailedf("cycle in live nodes")
		}
	}
	if prev != l.last {
		return errors.AssertionFailedf("last does not terminate the list")
	}
	if live != l.size {
		return errors.AssertionFailedf("%d live nodes, size %d", live, l.size)
	}
	for i, nd := range l.free {
		if nd.prev != nil || nd.next != nil {
			return errors.AssertionFailedf("pooled node %d is still linked", i)
		}
	}
	if live+len(l.free) != l.allocated {
		return errors.AssertionFailedf(
			"%d live and %d pooled nodes, %d constructed", live, len(l.free), l.allocated)
	}
	return nil
}

func (l *LinkedList[E]) maybeAssertInvariants() {
	if !buildutil.Invariants {
		return
	}
	if err := l.verify(); err != nil {
		panic(err)
	}
}
