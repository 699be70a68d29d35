package containers

import (
	"testing"
)

func TestRingQueueFIFOOrder(t *testing.T) {
	rq := NewRingQueue[int](4)
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}
	for i := 1; i <= 3; i++ {
		v, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("dequeue failed: %v", err)
		}
		if v != i {
			t.Fatalf("expected %d, got %d", i, v)
		}
	}
	if !rq.IsEmpty() {
		t.Fatal("queue should be empty after draining")
	}
}

func TestRingQueueFullAndEmptyErrors(t *testing.T) {
	rq := NewRingQueue[string](2)

	if _, err := rq.Dequeue(); err == nil {
		t.Fatal("dequeue on empty queue should fail")
	}

	if err := rq.Enqueue("a"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := rq.Enqueue("b"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if !rq.IsFull() {
		t.Fatal("queue should be full")
	}
	if err := rq.Enqueue("c"); err == nil {
		t.Fatal("enqueue on full queue should fail")
	}
}

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[int](2)

	for round := 0; round < 5; round++ {
		if err := rq.Enqueue(round); err != nil {
			t.Fatalf("enqueue failed on round %d: %v", round, err)
		}
		front, err := rq.Peek()
		if err != nil {
			t.Fatalf("peek failed: %v", err)
		}
		if front != round {
			t.Fatalf("expected front %d, got %d", round, front)
		}
		if _, err := rq.Dequeue(); err != nil {
			t.Fatalf("dequeue failed on round %d: %v", round, err)
		}
	}
	if rq.Len() != 0 {
		t.Fatalf("expected empty queue, got len %d", rq.Len())
	}
}
