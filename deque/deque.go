// Package deque provides bounded double-ended queues. Adding to a full queue
// evicts the element at the opposite end, so a queue fed with AddLast keeps
// the most recent Capacity elements.
package deque

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown deque kind")

// Kinds accepted by New.
const (
	ArrayKind = "array"
	ListKind  = "list"
)

// New builds an empty deque of the given kind.
func New[T any](kind string, capacity int) (Deque[T], error) {
	switch kind {
	case ArrayKind, "":
		return NewArrDeque[T](capacity), nil
	case ListKind:
		return NewListDeque[T](capacity), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownKind, kind, ArrayKind, ListKind)
	}
}

type Deque[T any] interface {
	// 队列的长度
	Size() int

	Capacity() int

	// 获取队列中对应下标的元素, 0 为队首
	Get(i int) T

	// 正向遍历
	Traverse(f func(i int, v T))

	// 遍历 [start, end)
	TraverseRange(start, end int, f func(i int, v T))

	// 在队列结尾增加一个元素, 队列满时移除队首元素
	AddLast(v T)

	// 在队列结尾删除一个元素
	RemoveLast() (T, bool)

	// 在队列头部增加一个元素, 队列满时移除队尾元素
	AddFirst(v T)

	// 在队列头部删除一个元素
	RemoveFirst() (T, bool)

	IsFull() bool

	IsEmpty() bool
}

func checkIndex(i, size int) {
	if i < 0 || i >= size {
		panic("index out of length")
	}
}
