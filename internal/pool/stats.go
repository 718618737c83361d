package pool

import (
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of pool telemetry.
type Stats struct {
	// Submitted is the number of tasks accepted since the last Start.
	Submitted uint64

	// Processed is the number of tasks that ran to completion.
	Processed uint64

	// Discarded is the number of queued tasks dropped by immediate shutdown.
	Discarded uint64

	// TotalWait is the cumulative time processed tasks spent queued.
	TotalWait time.Duration

	// AvgWait is TotalWait divided by Processed.
	AvgWait time.Duration

	// AvgQueueLen is the mean queue length observed at submit and dequeue.
	AvgQueueLen float64
}

// collector accumulates telemetry under its own lock so observers never
// contend with the scheduling path. It is reset on every Start and its
// summary is reported at shutdown when debug mode is on.
type collector struct {
	mu        sync.Mutex
	submitted uint64
	processed uint64
	discarded uint64
	totalWait time.Duration
	lenSum    int
	lenSample int
}

func (c *collector) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitted = 0
	c.processed = 0
	c.discarded = 0
	c.totalWait = 0
	c.lenSum = 0
	c.lenSample = 0
}

// taskSubmitted records one accepted task and samples the queue length.
func (c *collector) taskSubmitted(queueLen int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitted++
	c.lenSum += queueLen
	c.lenSample++
}

// taskStarted records the queue wait of a dequeued task and samples the
// queue length left behind.
func (c *collector) taskStarted(wait time.Duration, queueLen int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalWait += wait
	c.lenSum += queueLen
	c.lenSample++
}

func (c *collector) taskFinished() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed++
}

func (c *collector) tasksDiscarded(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discarded += uint64(n)
}

// snapshot returns the current counters with derived averages filled in.
func (c *collector) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Submitted: c.submitted,
		Processed: c.processed,
		Discarded: c.discarded,
		TotalWait: c.totalWait,
	}
	if c.processed > 0 {
		s.AvgWait = c.totalWait / time.Duration(c.processed)
	}
	if c.lenSample > 0 {
		s.AvgQueueLen = float64(c.lenSum) / float64(c.lenSample)
	}
	return s
}
