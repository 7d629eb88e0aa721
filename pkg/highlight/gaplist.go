package highlight

import "fmt"

// minGapCapacity is the smallest gap a growing list allocates.
const minGapCapacity = 32

// gapList is an index-addressable sequence backed by a single slice with a
// movable gap. Inserts and removes near the previous edit point only shift
// the elements between the old and new gap positions, so runs of local,
// sequential edits are amortized O(1) while reads stay O(1).
type gapList[T any] struct {
	items []T
	gap0  int // first unused slot
	gap1  int // first used slot after the gap
}

// Len returns the number of elements, excluding the gap.
func (l *gapList[T]) Len() int {
	return len(l.items) - (l.gap1 - l.gap0)
}

// Cap returns the number of slots currently allocated.
func (l *gapList[T]) Cap() int {
	return len(l.items)
}

func (l *gapList[T]) physical(i int) int {
	if i < l.gap0 {
		return i
	}
	return i + (l.gap1 - l.gap0)
}

func (l *gapList[T]) check(i int) {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("highlight: index %d out of range [0, %d)", i, l.Len()))
	}
}

// At returns the element at logical index i.
func (l *gapList[T]) At(i int) T {
	l.check(i)
	return l.items[l.physical(i)]
}

// Set replaces the element at logical index i.
func (l *gapList[T]) Set(i int, v T) {
	l.check(i)
	l.items[l.physical(i)] = v
}

// Insert places vs before logical index i. i may equal Len.
func (l *gapList[T]) Insert(i int, vs ...T) {
	if i < 0 || i > l.Len() {
		panic(fmt.Sprintf("highlight: insert index %d out of range [0, %d]", i, l.Len()))
	}
	if len(vs) == 0 {
		return
	}
	l.moveGap(i)
	l.grow(len(vs))
	copy(l.items[l.gap0:], vs)
	l.gap0 += len(vs)
}

// Remove deletes the elements in [i, j).
func (l *gapList[T]) Remove(i, j int) {
	if i < 0 || j < i || j > l.Len() {
		panic(fmt.Sprintf("highlight: remove range [%d, %d) out of range [0, %d]", i, j, l.Len()))
	}
	if i == j {
		return
	}
	l.moveGap(i)
	var zero T
	for k := l.gap1; k < l.gap1+(j-i); k++ {
		l.items[k] = zero
	}
	l.gap1 += j - i
}

// Clear removes every element but keeps the allocation.
func (l *gapList[T]) Clear() {
	clear(l.items)
	l.gap0 = 0
	l.gap1 = len(l.items)
}

// ShrinkToFit reallocates the backing slice to exactly Len elements.
func (l *gapList[T]) ShrinkToFit() {
	n := l.Len()
	if n == len(l.items) {
		return
	}
	items := make([]T, n)
	copy(items, l.items[:l.gap0])
	copy(items[l.gap0:], l.items[l.gap1:])
	l.items = items
	l.gap0 = n
	l.gap1 = n
}

// moveGap repositions the gap so that it starts at logical index i.
func (l *gapList[T]) moveGap(i int) {
	var zero T
	switch {
	case i < l.gap0:
		count := l.gap0 - i
		copy(l.items[l.gap1-count:l.gap1], l.items[i:l.gap0])
		for k := i; k < min(l.gap0, l.gap1-count); k++ {
			l.items[k] = zero
		}
		l.gap0 = i
		l.gap1 -= count
	case i > l.gap0:
		count := i - l.gap0
		copy(l.items[l.gap0:l.gap0+count], l.items[l.gap1:l.gap1+count])
		for k := max(l.gap1, l.gap0+count); k < l.gap1+count; k++ {
			l.items[k] = zero
		}
		l.gap0 += count
		l.gap1 += count
	}
}

// grow ensures the gap has room for at least needed elements.
func (l *gapList[T]) grow(needed int) {
	if l.gap1-l.gap0 >= needed {
		return
	}
	growth := max(len(l.items), needed, minGapCapacity)
	items := make([]T, len(l.items)+growth)
	copy(items, l.items[:l.gap0])
	after := len(l.items) - l.gap1
	gap1 := len(items) - after
	copy(items[gap1:], l.items[l.gap1:])
	l.items = items
	l.gap1 = gap1
}
