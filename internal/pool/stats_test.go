package pool

import (
	"testing"
	"time"
)

func TestCollector_Snapshot(t *testing.T) {
	c := &collector{}

	c.taskSubmitted(1)
	c.taskSubmitted(2)
	c.taskStarted(10*time.Millisecond, 1)
	c.taskFinished()
	c.taskStarted(30*time.Millisecond, 0)
	c.taskFinished()

	s := c.snapshot()
	if s.Submitted != 2 {
		t.Errorf("expected 2 submitted, got %d", s.Submitted)
	}
	if s.Processed != 2 {
		t.Errorf("expected 2 processed, got %d", s.Processed)
	}
	if s.TotalWait != 40*time.Millisecond {
		t.Errorf("expected total wait 40ms, got %v", s.TotalWait)
	}
	if s.AvgWait != 20*time.Millisecond {
		t.Errorf("expected avg wait 20ms, got %v", s.AvgWait)
	}
	// Samples: 1, 2, 1, 0 -> mean 1.0
	if s.AvgQueueLen != 1.0 {
		t.Errorf("expected avg queue len 1.0, got %f", s.AvgQueueLen)
	}
}

func TestCollector_EmptySnapshot(t *testing.T) {
	c := &collector{}

	s := c.snapshot()
	if s.AvgWait != 0 {
		t.Errorf("expected zero avg wait with no processed tasks, got %v", s.AvgWait)
	}
	if s.AvgQueueLen != 0 {
		t.Errorf("expected zero avg queue len with no samples, got %f", s.AvgQueueLen)
	}
}

func TestCollector_Discarded(t *testing.T) {
	c := &collector{}

	c.tasksDiscarded(3)
	c.tasksDiscarded(2)

	if s := c.snapshot(); s.Discarded != 5 {
		t.Errorf("expected 5 discarded, got %d", s.Discarded)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := &collector{}

	c.taskSubmitted(4)
	c.taskStarted(time.Second, 3)
	c.taskFinished()
	c.tasksDiscarded(1)
	c.reset()

	s := c.snapshot()
	if s.Submitted != 0 || s.Processed != 0 || s.Discarded != 0 ||
		s.TotalWait != 0 || s.AvgQueueLen != 0 {
		t.Errorf("reset left counters behind: %+v", s)
	}
}
