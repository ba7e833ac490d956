package calculator

import (
	"sync"
)

// executor spreads a range of pipe cells over a fixed pool of workers.
type executor struct {
	workers      int
	dispatchChan chan task
	quit         chan struct{}
	closeOnce    sync.Once
}

type task struct {
	start int
	end   int
	fn    func(start, end int)
	wg    *sync.WaitGroup
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	e := &executor{
		workers:      workers,
		dispatchChan: make(chan task, 3*workers),
		quit:         make(chan struct{}),
	}
	if workers > 1 {
		for i := 0; i < workers; i++ {
			go e.work()
		}
	}
	return e
}

func (e *executor) work() {
	for {
		select {
		case t := <-e.dispatchChan:
			t.fn(t.start, t.end)
			t.wg.Done()
		case <-e.quit:
			return
		}
	}
}

// run calls fn over [first, last) split into tasks and blocks until every
// task has finished. fn must only write state owned by its own range.
func (e *executor) run(first, last int, fn func(start, end int)) {
	if last <= first {
		return
	}
	if e.workers == 1 {
		fn(first, last)
		return
	}
	tasks := split(first, last, e.workers)
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, t := range tasks {
		t.fn = fn
		t.wg = &wg
		e.dispatchChan <- t
	}
	wg.Wait()
}

func (e *executor) close() {
	e.closeOnce.Do(func() {
		close(e.quit)
	})
}

// split gives every worker two halves of an equal share, then hands out the
// remainder one cell at a time so the tail of the pipe is balanced too.
func split(first, last, workers int) []task {
	total := last - first
	taskLen, remainder := total/workers, total%workers
	tasks := make([]task, 0, 2*workers+remainder)
	start := first
	if taskLen > 0 {
		half1, half2 := taskLen/2, taskLen/2
		if taskLen%2 == 1 {
			half2++
		}
		for start < last-remainder {
			if half1 != 0 {
				tasks = append(tasks, task{start: start, end: start + half1})
				start += half1
			}
			tasks = append(tasks, task{start: start, end: start + half2})
			start += half2
		}
	}
	for i := 0; i < remainder; i++ {
		tasks = append(tasks, task{start: start, end: start + 1})
		start++
	}
	return tasks
}
