package sweep

import (
	"sync"
)

// workerPool runs submitted tasks on a fixed set of goroutines. Each task is
// one complete simulation run; the runner converts run panics into errors
// before they reach the pool.
type workerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
}

// newWorkerPool creates a pool with the given number of workers and starts
// them.
func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	pool := &workerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		task()
	}
}

// submit adds a task to the pool.
func (wp *workerPool) submit(task func()) {
	wp.taskQueue <- task
}

// wait closes the queue and blocks until all submitted tasks finish.
func (wp *workerPool) wait() {
	wp.once.Do(func() {
		close(wp.taskQueue)
	})
	wp.wg.Wait()
}
