// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

// Buffer is a deque maintained over a ring buffer.
//
// Note: it is backed by a slice (unlike container/ring which is backed by a
// linked list). The zero value is an empty buffer ready to use.
type Buffer[T any] struct {
	buffer []T
	head   int // the index of the front of the buffer
	tail   int // the index of the first position after the end of the buffer

	// Indicates whether the buffer is empty. Necessary to distinguish
	// between an empty buffer and a buffer that uses all of its capacity.
	nonEmpty bool
}

// MakeBuffer returns a Buffer with room for n elements.
func MakeBuffer[T any](n int) Buffer[T] {
	return Buffer[T]{buffer: make([]T, n)}
}

// Len returns the number of elements in the Buffer.
func (r *Buffer[T]) Len() int {
	if !r.nonEmpty {
		return 0
	}
	if r.head < r.tail {
		return r.tail - r.head
	} else if r.head == r.tail {
		return len(r.buffer)
	}
	return len(r.buffer) + r.tail - r.head
}

// Cap returns the capacity of the Buffer.
func (r *Buffer[T]) Cap() int {
	return len(r.buffer)
}

// Get returns the element at position pos in the Buffer (zero-based).
func (r *Buffer[T]) Get(pos int) T {
	if !r.nonEmpty || pos < 0 || pos >= r.Len() {
		panic("index out of bounds")
	}
	return r.buffer[(pos+r.head)%len(r.buffer)]
}

// GetFirst returns the element at the front of the Buffer.
func (r *Buffer[T]) GetFirst() T {
	if !r.nonEmpty {
		panic("getting first from empty ring buffer")
	}
	return r.buffer[r.head]
}

// GetLast returns the element at the end of the Buffer.
func (r *Buffer[T]) GetLast() T {
	if !r.nonEmpty {
		panic("getting last from empty ring buffer")
	}
	return r.buffer[r.lastPos()]
}

func (r *Buffer[T]) lastPos() int {
	return (len(r.buffer) + r.tail - 1) % len(r.buffer)
}

func (r *Buffer[T]) grow(n int) {
	newBuffer := make([]T, n)
	l := r.Len()
	if r.head < r.tail {
		copy(newBuffer[:l], r.buffer[r.head:r.tail])
	} else if r.nonEmpty {
		copy(newBuffer[:len(r.buffer)-r.head], r.buffer[r.head:])
		copy(newBuffer[len(r.buffer)-r.head:l], r.buffer[:r.tail])
	}
	r.head = 0
	r.tail = l % n
	r.buffer = newBuffer
}

func (r *Buffer[T]) maybeGrow() {
	if r.Len() != len(r.buffer) {
		return
	}
	n := 2 * len(r.buffer)
	if n == 0 {
		n = 1
	}
	r.grow(n)
}

// AddFirst adds element to the front of the Buffer and doubles its underlying
// slice if necessary.
func (r *Buffer[T]) AddFirst(element T) {
	r.maybeGrow()
	r.head = (len(r.buffer) + r.head - 1) % len(r.buffer)
	r.buffer[r.head] = element
	r.nonEmpty = true
}

// AddLast adds element to the end of the Buffer and doubles its underlying
// slice if necessary.
func (r *Buffer[T]) AddLast(element T) {
	r.maybeGrow()
	r.buffer[r.tail] = element
	r.tail = (r.tail + 1) % len(r.buffer)
	r.nonEmpty = true
}

// PopFirst removes and returns the element at the front of the Buffer.
func (r *Buffer[T]) PopFirst() T {
	if !r.nonEmpty {
		panic("removing first from empty ring buffer")
	}
	var zero T
	element := r.buffer[r.head]
	r.buffer[r.head] = zero
	r.head = (r.head + 1) % len(r.buffer)
	if r.head == r.tail {
		r.nonEmpty = false
	}
	return element
}

// PopLast removes and returns the element at the end of the Buffer.
func (r *Buffer[T]) PopLast() T {
	if !r.nonEmpty {
		panic("removing last from empty ring buffer")
	}
	var zero T
	lastPos := r.lastPos()
	element := r.buffer[lastPos]
	r.buffer[lastPos] = zero
	r.tail = lastPos
	if r.tail == r.head {
		r.nonEmpty = false
	}
	return element
}

// Reserve reserves the provided number of elements in the Buffer. It is an
// error to reserve a size less than the Buffer's current length.
func (r *Buffer[T]) Reserve(n int) {
	if n < r.Len() {
		panic("reserving fewer elements than current length")
	} else if n > len(r.buffer) {
		r.grow(n)
	}
}

// Reset makes Buffer treat its underlying memory as if it were empty. This
// allows for reusing the same memory again without explicitly removing old
// elements.
func (r *Buffer[T]) Reset() {
	r.head = 0
	r.tail = 0
	r.nonEmpty = false
}
