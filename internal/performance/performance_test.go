package performance

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRun(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	var counter atomic.Int64
	tasks := make([]func(), 20)
	for i := range tasks {
		tasks[i] = func() { counter.Add(1) }
	}
	pool.Run(tasks...)

	if got := counter.Load(); got != 20 {
		t.Errorf("ran %d tasks, want 20", got)
	}
}

func TestWorkerPoolSubmitWhenStopped(t *testing.T) {
	pool := NewWorkerPool(2)
	if pool.Submit(func() {}) {
		t.Error("Submit accepted a task before Start")
	}
}

func TestWorkerPoolRunWithoutStart(t *testing.T) {
	// Tasks fall back to the calling goroutine when the pool is not running.
	pool := NewWorkerPool(2)
	ran := false
	pool.Run(func() { ran = true })
	if !ran {
		t.Error("task did not run")
	}
}

func TestBatchCollectorFlushesFullBatches(t *testing.T) {
	var batches [][]int
	collector := NewBatchCollector(3, func(batch []int) error {
		copied := make([]int, len(batch))
		copy(copied, batch)
		batches = append(batches, copied)
		return nil
	})

	for i := 0; i < 7; i++ {
		if err := collector.Add(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := collector.Flush(); err != nil {
		t.Fatal(err)
	}

	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 3 || len(batches[2]) != 1 {
		t.Errorf("batch sizes = %d/%d/%d, want 3/3/1", len(batches[0]), len(batches[1]), len(batches[2]))
	}
}

func TestBatchCollectorFlushEmpty(t *testing.T) {
	calls := 0
	collector := NewBatchCollector(5, func([]int) error { calls++; return nil })
	if err := collector.Flush(); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Error("empty flush invoked the flush function")
	}
}
