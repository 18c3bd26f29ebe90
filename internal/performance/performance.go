// Package performance provides the small concurrency utilities shared by
// the analysis pipeline: a bounded worker pool for fan-out queries and a
// batch collector for bulk store writes.
package performance

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a fixed set of workers for concurrent task execution.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	running   atomic.Bool
	tasksDone atomic.Uint64
}

// NewWorkerPool creates a worker pool. If workers is 0, it defaults to
// runtime.NumCPU().
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*16),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start starts the worker pool.
func (p *WorkerPool) Start() {
	if p.running.Swap(true) {
		return
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			task()
			p.tasksDone.Add(1)
		}
	}
}

// Submit submits a task to the pool. Returns false if the pool is not
// running or the queue is full.
func (p *WorkerPool) Submit(task func()) bool {
	if !p.running.Load() {
		return false
	}
	select {
	case p.taskQueue <- task:
		return true
	default:
		return false
	}
}

// Run submits every task and blocks until all of them finish. Tasks that
// cannot be queued run on the calling goroutine instead of being dropped.
func (p *WorkerPool) Run(tasks ...func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		wrapped := func() {
			defer wg.Done()
			task()
		}
		if !p.Submit(wrapped) {
			wrapped()
		}
	}
	wg.Wait()
}

// Stop stops the pool and waits for all workers to finish.
func (p *WorkerPool) Stop() {
	if !p.running.Swap(false) {
		return
	}
	p.cancel()
	close(p.taskQueue)
	p.wg.Wait()
}

// TasksDone reports the number of completed tasks.
func (p *WorkerPool) TasksDone() uint64 {
	return p.tasksDone.Load()
}

// BatchCollector gathers items and flushes them in fixed-size batches. Used
// for bulk inserts where per-item writes would thrash the store.
type BatchCollector[T any] struct {
	batchSize int
	flushFn   func([]T) error
	items     []T
	mu        sync.Mutex
}

// NewBatchCollector creates a collector that calls flushFn with every full
// batch.
func NewBatchCollector[T any](batchSize int, flushFn func([]T) error) *BatchCollector[T] {
	if batchSize < 1 {
		batchSize = 1
	}
	return &BatchCollector[T]{
		batchSize: batchSize,
		flushFn:   flushFn,
		items:     make([]T, 0, batchSize),
	}
}

// Add appends an item. A full batch is flushed immediately.
func (b *BatchCollector[T]) Add(item T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, item)
	if len(b.items) >= b.batchSize {
		return b.flush()
	}
	return nil
}

// Flush flushes any buffered items.
func (b *BatchCollector[T]) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flush()
}

func (b *BatchCollector[T]) flush() error {
	if len(b.items) == 0 {
		return nil
	}
	err := b.flushFn(b.items)
	b.items = b.items[:0]
	return err
}
