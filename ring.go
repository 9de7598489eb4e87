package track

import (
	"errors"
	"iter"
)

// errRingOverflow is returned by RingBuffer.TryPush when the buffer is at
// capacity. It never escapes this package directly; Track translates it
// into ErrOverflow (or recovers from it via a grow-and-retry) as the
// relevant operation dictates.
var errRingOverflow = errors.New("track: ring: overflow")

// RingBuffer is a fixed-capacity circular sequence supporting extension at
// either end, positional indexing, truncation that yields the removed
// elements, and a logical reversal flag.
//
// The zero value is not usable; construct one with NewRingBuffer.
type RingBuffer[T any] struct {
	inner      []T
	startIndex int
	length     int
	reversed   bool
}

// NewRingBuffer constructs an empty RingBuffer with the given fixed
// capacity. It panics if capacity is not positive.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		panic("track: ring: capacity must be positive")
	}
	return &RingBuffer[T]{inner: make([]T, capacity)}
}

// IsEmpty reports whether the buffer currently holds no elements.
func (b *RingBuffer[T]) IsEmpty() bool { return b.length == 0 }

// Capacity returns the fixed number of elements the buffer can hold.
func (b *RingBuffer[T]) Capacity() int { return len(b.inner) }

// Len returns the number of elements currently stored.
func (b *RingBuffer[T]) Len() int { return b.length }

// IsReversed reports whether the buffer is currently logically reversed.
func (b *RingBuffer[T]) IsReversed() bool { return b.reversed }

// Reverse toggles the logical reversal flag in O(1). All subsequent
// positional reads, and the direction of TryPush and truncation, invert.
func (b *RingBuffer[T]) Reverse() { b.reversed = !b.reversed }

// Grow enlarges capacity by 50% (rounded down), moving the elements that had
// wrapped around to the front of the old backing array so that logical order
// is preserved. The start index does not change; the sequence still wraps if
// it extends past the end of the enlarged array.
func (b *RingBuffer[T]) Grow() {
	capacity := b.Capacity()
	capDiff := capacity / 2

	grown := make([]T, capacity+capDiff)
	copy(grown, b.inner)
	b.inner = grown

	stopIdx := 0
	for copyIdx := 0; copyIdx < b.startIndex; copyIdx++ {
		if copyIdx == capDiff {
			stopIdx = b.startIndex - copyIdx
			break
		}
		b.inner[copyIdx], b.inner[copyIdx+capacity] = b.inner[copyIdx+capacity], b.inner[copyIdx]
	}
	for copyIdx := 0; copyIdx < stopIdx; copyIdx++ {
		b.inner[copyIdx], b.inner[copyIdx+capDiff] = b.inner[copyIdx+capDiff], b.inner[copyIdx]
	}
}

// Clear resets the buffer to empty, returning the elements it held.
func (b *RingBuffer[T]) Clear() Truncated[T] {
	oldStart, oldLen := b.startIndex, b.length
	b.startIndex = 0
	b.length = 0
	return newTruncated(b, oldStart, oldLen)
}

// First returns the element at logical position 0, if any.
func (b *RingBuffer[T]) First() (T, bool) {
	if b.IsEmpty() {
		var zero T
		return zero, false
	}
	return b.Get(0), true
}

// Last returns the element at logical position Len()-1, if any.
func (b *RingBuffer[T]) Last() (T, bool) {
	if b.IsEmpty() {
		var zero T
		return zero, false
	}
	return b.Get(b.length - 1), true
}

// LastPtr returns a pointer to the element at logical position Len()-1, for
// in-place mutation, or nil if the buffer is empty.
func (b *RingBuffer[T]) LastPtr() *T {
	if b.IsEmpty() {
		return nil
	}
	return b.GetPtr(b.length - 1)
}

// Get returns the element at logical position i. Positions outside
// [0, Len()) are the caller's contract to avoid; for convenience they wrap
// modulo Capacity(), but callers must not rely on that beyond Len().
func (b *RingBuffer[T]) Get(i int) T {
	return b.inner[b.wrapIndex(i)]
}

// GetPtr returns a pointer to the element at logical position i, with the
// same contract as Get.
func (b *RingBuffer[T]) GetPtr(i int) *T {
	return &b.inner[b.wrapIndex(i)]
}

// Set overwrites the element at logical position i.
func (b *RingBuffer[T]) Set(i int, v T) {
	b.inner[b.wrapIndex(i)] = v
}

// TryPush appends an element at the logical tail (or prepends at the
// logical head, if reversed). It returns an error if the buffer is already
// at capacity; the caller retains the rejected value.
func (b *RingBuffer[T]) TryPush(el T) error {
	if b.length+1 > b.Capacity() {
		return errRingOverflow
	}

	// The slot past the physical tail is the logical tail, or, when reversed,
	// the logical head.
	b.inner[b.wrapRaw(b.startIndex+b.length)] = el
	b.length++
	return nil
}

// TryAppend pushes each element of els in order, stopping at the first
// overflow.
func (b *RingBuffer[T]) TryAppend(els ...T) error {
	for _, el := range els {
		if err := b.TryPush(el); err != nil {
			return err
		}
	}
	return nil
}

// TruncateBack drops the first n logical elements, returning them in
// original order. n is clamped so the buffer is never fully emptied by this
// call (use Clear for that).
func (b *RingBuffer[T]) TruncateBack(n int) Truncated[T] {
	if b.IsEmpty() {
		return emptyTruncated[T]()
	}
	if n >= b.length {
		n = b.length - 1
	}

	if b.reversed {
		b.length -= n
		return newTruncated(b, b.wrapRaw(b.startIndex+b.length), n)
	}

	oldStart := b.startIndex
	b.startIndex = b.wrapIndex(n)
	b.length -= n
	return newTruncated(b, oldStart, n)
}

// TruncateForward keeps logical positions [0, i], dropping the rest, and
// returns the dropped suffix in original order.
func (b *RingBuffer[T]) TruncateForward(i int) Truncated[T] {
	if b.IsEmpty() {
		return emptyTruncated[T]()
	}

	oldLen := b.length
	if i >= b.length {
		return emptyTruncated[T]()
	}

	if b.reversed {
		oldStart := b.startIndex
		b.startIndex = b.wrapIndex(i)
		b.length = i + 1
		return newTruncated(b, oldStart, oldLen-b.length)
	}

	b.length = i + 1
	return newTruncated(b, b.wrapRaw(b.startIndex+b.length), oldLen-b.length)
}

// All returns an iterator over the buffer's elements in logical order.
func (b *RingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < b.length; i++ {
			if !yield(b.Get(i)) {
				return
			}
		}
	}
}

// WrapRaw reduces a raw (non-wrapped) index modulo the buffer's capacity.
func (b *RingBuffer[T]) WrapRaw(i int) int {
	return i % b.Capacity()
}

func (b *RingBuffer[T]) wrapIndex(i int) int {
	if b.reversed {
		i = b.length - i - 1
	}
	return b.wrapRaw(b.startIndex + i)
}

func (b *RingBuffer[T]) wrapRaw(i int) int {
	return i % b.Capacity()
}

// Truncated holds the elements removed by a RingBuffer truncation or clear,
// in their original relative order, as of the moment the truncation ran.
//
// Unlike a lazily-evaluated iterator over the backing array, Truncated
// copies the removed elements out eagerly: the backing array's slots are
// free to be overwritten by the very next TryPush, and copying a handful of
// values is cheaper than the bookkeeping an aliased, wrap-aware iterator
// would need to stay valid across further mutation.
type Truncated[T any] struct {
	items []T
}

func newTruncated[T any](b *RingBuffer[T], base, length int) Truncated[T] {
	if length == 0 {
		return Truncated[T]{}
	}
	items := make([]T, length)
	capacity := b.Capacity()
	for i := 0; i < length; i++ {
		idx := base + i
		if b.reversed {
			idx = base + (length - i - 1)
		}
		items[i] = b.inner[idx%capacity]
	}
	return Truncated[T]{items: items}
}

func emptyTruncated[T any]() Truncated[T] { return Truncated[T]{} }

// Len returns the number of removed elements.
func (t Truncated[T]) Len() int { return len(t.items) }

// IsEmpty reports whether no elements were removed.
func (t Truncated[T]) IsEmpty() bool { return len(t.items) == 0 }

// Slice returns the removed elements, in original order. The caller must
// not mutate the returned slice's backing array if the Truncated value is
// used again afterward.
func (t Truncated[T]) Slice() []T { return t.items }

// PeekFirst returns the first removed element, if any.
func (t Truncated[T]) PeekFirst() (T, bool) {
	if len(t.items) == 0 {
		var zero T
		return zero, false
	}
	return t.items[0], true
}

// PeekLast returns the last removed element, if any.
func (t Truncated[T]) PeekLast() (T, bool) {
	if len(t.items) == 0 {
		var zero T
		return zero, false
	}
	return t.items[len(t.items)-1], true
}

// All returns an iterator over the removed elements, in original order.
func (t Truncated[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range t.items {
			if !yield(v) {
				return
			}
		}
	}
}
