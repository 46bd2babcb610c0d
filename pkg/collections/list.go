package collections

// link is one node of a List. Nodes live in a Pool so their addresses stay
// put while queued.
type link[T any] struct {
	data T
	next *link[T]
}

// List is a singly linked list with first and last pointers and an element
// count. Its nodes are allocated from a pool that is either supplied by the
// caller (and shared between lists) or created privately at construction.
type List[T any] struct {
	first *link[T]
	last  *link[T]
	count int

	allocator      *Pool[link[T]]
	allocatorOwned bool
}

// NewList creates an empty list. If allocator is nil a private pool is
// created and released again by Destroy.
func NewList[T any](allocator *Pool[link[T]]) *List[T] {
	l := &List[T]{allocator: allocator}
	if allocator == nil {
		l.allocator = NewPool[link[T]]()
		l.allocatorOwned = true
	}
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.count
}

// Prepend inserts data at the front of the list.
func (l *List[T]) Prepend(data T) {
	n := l.allocator.Alloc()
	n.data = data
	n.next = l.first
	l.first = n
	if l.last == nil {
		l.last = n
	}
	l.count++
}

// Append inserts data at the end of the list.
func (l *List[T]) Append(data T) {
	n := l.allocator.Alloc()
	n.data = data
	n.next = nil
	if l.last == nil {
		l.first = n
	} else {
		l.last.next = n
	}
	l.last = n
	l.count++
}

// InsertAfter inserts data behind the node currently holding after. It
// panics if after is not in the list.
func (l *List[T]) InsertAfter(after *T, data T) {
	pos := l.first
	for pos != nil && &pos.data != after {
		pos = pos.next
	}
	if pos == nil {
		panic("collections: InsertAfter position not in list")
	}
	n := l.allocator.Alloc()
	n.data = data
	n.next = pos.next
	pos.next = n
	if l.last == pos {
		l.last = n
	}
	l.count++
}

// Pop removes the first element and returns its data. It panics on an
// empty list.
func (l *List[T]) Pop() T {
	n := l.first
	if n == nil {
		panic("collections: Pop from empty list")
	}
	l.first = n.next
	if l.first == nil {
		l.last = nil
	}
	l.count--

	data := n.data
	var zero T
	n.data = zero
	l.allocator.Free(n)
	return data
}

// Destroy empties the list, returning all nodes to the allocator. A private
// allocator is reset; a shared one is left to its owner.
func (l *List[T]) Destroy() {
	for l.first != nil {
		l.Pop()
	}
	if l.allocatorOwned {
		l.allocator.Reset()
	}
}
