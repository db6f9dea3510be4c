package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func noop(context.Context) {}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, Task{ID: "task1", Run: noop}) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	task := <-q.Dequeue(ctx)
	if task.ID != "task1" {
		t.Errorf("expected task1, got %v", task.ID)
	}
	_ = q.Close()
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, Task{ID: "1", Run: noop}) || !q.Enqueue(ctx, Task{ID: "2", Run: noop}) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, Task{ID: "3", Run: noop}) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_RejectsInvalid(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	if q.Enqueue(ctx, Task{ID: "nil-run"}) {
		t.Error("expected a task without Run to be rejected")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if q.Enqueue(cancelled, Task{ID: "late", Run: noop}) {
		t.Error("expected enqueue with a cancelled context to fail")
	}
}

func TestInMemoryQueue_CloseDrains(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		q.Enqueue(ctx, Task{ID: fmt.Sprintf("t%d", i), Run: noop})
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, Task{ID: "after", Run: noop}) {
		t.Error("expected enqueue after close to fail")
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}

	var got []string
	for task := range q.Dequeue(ctx) {
		got = append(got, task.ID)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 drained tasks, got %d", len(got))
	}
}

func TestInMemoryQueue_ConcurrentConsumers(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		q.Enqueue(ctx, Task{ID: fmt.Sprintf("t%d", i), Run: noop})
	}
	_ = q.Close()

	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range q.Dequeue(ctx) {
				mu.Lock()
				seen[task.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 100 {
		t.Errorf("expected 100 distinct tasks, got %d", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("task %s delivered %d times", id, n)
		}
	}
}
