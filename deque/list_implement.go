package deque

type ListDeque[T any] struct {
	// 哨兵节点
	head *node[T]
	tail *node[T]

	size     int
	capacity int
}

type node[T any] struct {
	val  T
	pre  *node[T]
	next *node[T]
}

// 工厂方法
func NewListDeque[T any](capacity int) *ListDeque[T] {
	if capacity < 1 {
		capacity = 1
	}
	head, tail := &node[T]{}, &node[T]{}
	head.next = tail
	tail.pre = head
	return &ListDeque[T]{
		head:     head,
		tail:     tail,
		capacity: capacity,
	}
}

func (ld *ListDeque[T]) Size() int     { return ld.size }
func (ld *ListDeque[T]) Capacity() int { return ld.capacity }
func (ld *ListDeque[T]) IsFull() bool  { return ld.size == ld.capacity }
func (ld *ListDeque[T]) IsEmpty() bool { return ld.size == 0 }

func (ld *ListDeque[T]) at(i int) *node[T] {
	checkIndex(i, ld.size)
	if i < ld.size/2 {
		iter := ld.head.next
		for k := 0; k < i; k++ {
			iter = iter.next
		}
		return iter
	}
	iter := ld.tail.pre
	for k := ld.size - 1; k > i; k-- {
		iter = iter.pre
	}
	return iter
}

func (ld *ListDeque[T]) Get(i int) T {
	return ld.at(i).val
}

func (ld *ListDeque[T]) Traverse(f func(i int, v T)) {
	ld.TraverseRange(0, ld.size, f)
}

func (ld *ListDeque[T]) TraverseRange(start, end int, f func(i int, v T)) {
	if start < 0 {
		start = 0
	}
	if end > ld.size {
		end = ld.size
	}
	if start >= end {
		return
	}
	iter := ld.at(start)
	for k := start; k < end; k++ {
		f(k, iter.val)
		iter = iter.next
	}
}

func (ld *ListDeque[T]) insertAfter(n *node[T], v T) {
	nn := &node[T]{val: v, pre: n, next: n.next}
	n.next.pre = nn
	n.next = nn
	ld.size++
}

func (ld *ListDeque[T]) remove(n *node[T]) T {
	n.pre.next = n.next
	n.next.pre = n.pre
	ld.size--
	return n.val
}

func (ld *ListDeque[T]) AddLast(v T) {
	if ld.IsFull() {
		ld.RemoveFirst()
	}
	ld.insertAfter(ld.tail.pre, v)
}

func (ld *ListDeque[T]) AddFirst(v T) {
	if ld.IsFull() {
		ld.RemoveLast()
	}
	ld.insertAfter(ld.head, v)
}

func (ld *ListDeque[T]) RemoveFirst() (T, bool) {
	if ld.IsEmpty() {
		var zero T
		return zero, false
	}
	return ld.remove(ld.head.next), true
}

func (ld *ListDeque[T]) RemoveLast() (T, bool) {
	if ld.IsEmpty() {
		var zero T
		return zero, false
	}
	return ld.remove(ld.tail.pre), true
}
