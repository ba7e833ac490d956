package calculator

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCoversRange(t *testing.T) {
	for _, c := range []struct{ first, last, workers int }{
		{0, 80, 4}, {0, 3, 4}, {5, 22, 3}, {0, 7, 7}, {0, 1, 2}, {0, 100, 6},
	} {
		tasks := split(c.first, c.last, c.workers)
		next := c.first
		for _, tk := range tasks {
			assert.Equal(t, next, tk.start, "%+v", c)
			assert.Greater(t, tk.end, tk.start, "%+v", c)
			next = tk.end
		}
		assert.Equal(t, c.last, next, "%+v", c)
	}
}

func TestExecutorRun(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		e := newExecutor(workers)
		visited := make([]int32, 101)
		var calls int32
		e.run(0, 101, func(start, end int) {
			atomic.AddInt32(&calls, 1)
			for i := start; i < end; i++ {
				visited[i]++
			}
		})
		for i, v := range visited {
			assert.Equal(t, int32(1), v, "cell %d, workers %d", i, workers)
		}
		assert.GreaterOrEqual(t, calls, int32(1))
		e.run(3, 3, func(int, int) { t.Fatal("empty range dispatched") })
		e.close()
		e.close()
	}
}
