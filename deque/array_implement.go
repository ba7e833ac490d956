package deque

// ArrDeque is a ring buffer. Elements stay in one contiguous array, which
// keeps traversal cache friendly.
type ArrDeque[T any] struct {
	arr []T
	// 队首下标
	start int
	// 元素个数
	size int
}

// 工厂方法
func NewArrDeque[T any](capacity int) *ArrDeque[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque[T]{arr: make([]T, capacity)}
}

func (ad *ArrDeque[T]) Size() int     { return ad.size }
func (ad *ArrDeque[T]) Capacity() int { return len(ad.arr) }
func (ad *ArrDeque[T]) IsFull() bool  { return ad.size == len(ad.arr) }
func (ad *ArrDeque[T]) IsEmpty() bool { return ad.size == 0 }

// index maps a queue position to an array slot.
func (ad *ArrDeque[T]) index(i int) int {
	return (ad.start + i) % len(ad.arr)
}

func (ad *ArrDeque[T]) Get(i int) T {
	checkIndex(i, ad.size)
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque[T]) Traverse(f func(i int, v T)) {
	ad.TraverseRange(0, ad.size, f)
}

func (ad *ArrDeque[T]) TraverseRange(start, end int, f func(i int, v T)) {
	if start < 0 {
		start = 0
	}
	if end > ad.size {
		end = ad.size
	}
	for k := start; k < end; k++ {
		z := ad.start + k
		if z >= len(ad.arr) {
			z -= len(ad.arr)
		}
		f(k, ad.arr[z])
	}
}

func (ad *ArrDeque[T]) AddLast(v T) {
	if ad.IsFull() {
		ad.RemoveFirst()
	}
	ad.arr[ad.index(ad.size)] = v
	ad.size++
}

func (ad *ArrDeque[T]) AddFirst(v T) {
	if ad.IsFull() {
		ad.RemoveLast()
	}
	ad.start = (ad.start - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.start] = v
	ad.size++
}

func (ad *ArrDeque[T]) RemoveFirst() (T, bool) {
	var zero T
	if ad.IsEmpty() {
		return zero, false
	}
	v := ad.arr[ad.start]
	ad.arr[ad.start] = zero
	ad.start = ad.index(1)
	ad.size--
	return v, true
}

func (ad *ArrDeque[T]) RemoveLast() (T, bool) {
	var zero T
	if ad.IsEmpty() {
		return zero, false
	}
	z := ad.index(ad.size - 1)
	v := ad.arr[z]
	ad.arr[z] = zero
	ad.size--
	return v, true
}
