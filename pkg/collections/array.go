package collections

import "sort"

// Array is a growable contiguous array of equal-size records. Elements are
// accessed by their 0-based index; their addresses are stable between
// resizes but may change when a resize grows the backing storage. Storage
// grows geometrically and is never released on a shrinking resize.
type Array[T any] struct {
	data []T
}

// NewArray creates an empty array.
func NewArray[T any]() *Array[T] {
	return &Array[T]{}
}

// Len returns the number of valid elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Resize sets the number of valid elements to n. Elements revealed by a
// growing resize are zero values; elements cut off by a shrinking resize
// keep their storage for later reuse.
func (a *Array[T]) Resize(n int) {
	if n < 0 {
		panic("collections: negative array size")
	}
	if n <= cap(a.data) {
		old := len(a.data)
		a.data = a.data[:n]
		var zero T
		for i := old; i < n; i++ {
			a.data[i] = zero
		}
		return
	}
	newCap := 2 * cap(a.data)
	if newCap < n {
		newCap = n
	}
	grown := make([]T, n, newCap)
	copy(grown, a.data)
	a.data = grown
}

// Index returns the address of element i. It panics unless 0 <= i < Len().
func (a *Array[T]) Index(i int) *T {
	return &a.data[i]
}

// Sort sorts the valid elements by cmp, which must return a negative,
// zero or positive value as in the usual three-way comparison.
func (a *Array[T]) Sort(cmp func(x, y *T) int) {
	sort.SliceStable(a.data, func(i, j int) bool {
		return cmp(&a.data[i], &a.data[j]) < 0
	})
}

// Slice returns the valid elements as a slice sharing the array's storage.
// The slice is invalidated by the next growing Resize.
func (a *Array[T]) Slice() []T {
	return a.data
}
