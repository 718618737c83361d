package pool

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ID identifies a submitted task. Ids are unique and strictly increasing in
// submission order for the lifetime of the pool, including across restarts.
type ID uint64

// InvalidID is returned alongside the error when Submit rejects a task.
const InvalidID = ^ID(0)

// Sentinel errors returned by pool operations.
var (
	// ErrNotRunning is returned by Submit when the pool has not been
	// started or a shutdown has begun. The caller may retry after Start.
	ErrNotRunning = errors.New("pool is not running")

	// ErrUnknownTask is returned by Status for ids that were never
	// submitted.
	ErrUnknownTask = errors.New("unknown task id")

	// ErrNoWorkers is returned by Start for worker counts below 1; the
	// pool stays uninitialized.
	ErrNoWorkers = errors.New("worker count must be at least 1")

	// ErrNilTask is returned by Submit for a nil callable.
	ErrNilTask = errors.New("task must not be nil")
)

type poolState int

const (
	stateIdle poolState = iota // not started, or fully torn down
	stateRunning
	stateTerminating
)

// Pool runs submitted callables on a fixed set of worker goroutines fed from
// one shared FIFO queue. Each task is tracked by id from submission to
// completion and can be polled at any time with Status. Two shutdown modes
// are supported: Shutdown drains the queue, ShutdownNow discards pending
// tasks and only lets in-flight ones finish. After either returns, the pool
// may be started again; ids and finished statuses carry over.
type Pool[R any] struct {
	// lifecycle serializes Start, Shutdown and ShutdownNow so concurrent
	// lifecycle calls cannot interleave mid-teardown.
	lifecycle sync.Mutex

	// mu guards state and sequences every queue and table mutation against
	// the wakeup condition; cond wakes workers on new work or termination.
	mu   sync.Mutex
	cond *sync.Cond

	state poolState
	wg    sync.WaitGroup

	queue  *taskQueue[R]
	table  *statusTable[R]
	stats  *collector
	logger *slog.Logger
	debug  bool
}

// Option configures a Pool.
type Option func(*options)

type options struct {
	logger *slog.Logger
	debug  bool
}

// WithLogger sets the logger used by the pool. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDebug enables per-task debug logging and the telemetry summary that is
// reported when the pool shuts down.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// New creates an unstarted pool. Call Start to spawn workers.
func New[R any](opts ...Option) *Pool[R] {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	p := &Pool[R]{
		queue:  newTaskQueue[R](),
		table:  newStatusTable[R](),
		stats:  &collector{},
		logger: o.logger,
		debug:  o.debug,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Start spawns workers goroutines and resets telemetry. Starting an already
// running pool is a silent no-op. A worker count below 1 returns
// ErrNoWorkers and leaves the pool uninitialized.
func (p *Pool[R]) Start(workers int) error {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if workers < 1 {
		return ErrNoWorkers
	}

	p.mu.Lock()
	if p.state != stateIdle {
		p.mu.Unlock()
		p.logger.Debug("start skipped, pool already initialized")
		return nil
	}
	p.state = stateRunning
	p.mu.Unlock()

	p.stats.reset()
	p.logger.Debug("starting workers", "count", workers)

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return nil
}

// Submit enqueues fn and wakes one idle worker. The returned id can be
// polled with Status. Submission never blocks on queue capacity; a pool that
// is not running rejects the task with InvalidID and ErrNotRunning.
func (p *Pool[R]) Submit(fn func() R) (ID, error) {
	if fn == nil {
		return InvalidID, ErrNilTask
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != stateRunning {
		return InvalidID, ErrNotRunning
	}

	// The status entry must exist before any worker can dequeue the id;
	// holding mu across both steps guarantees that ordering.
	id := p.queue.push(fn)
	p.table.setQueued(id)
	p.stats.taskSubmitted(p.queue.size())
	p.cond.Signal()

	if p.debug {
		p.logger.Debug("task submitted", "id", id, "queued", p.queue.size())
	}
	return id, nil
}

// Status reports the lifecycle state of a task. It never blocks on task
// execution. Ids never submitted yield ErrUnknownTask. A task reported
// StateFinished keeps reporting the same result forever.
func (p *Pool[R]) Status(id ID) (TaskStatus[R], error) {
	st, ok := p.table.get(id)
	if !ok {
		return TaskStatus[R]{}, ErrUnknownTask
	}
	return st, nil
}

// Tasks returns a snapshot of every task the pool has ever accepted, sorted
// by id.
func (p *Pool[R]) Tasks() []TaskInfo {
	return p.table.all()
}

// Stats returns a snapshot of the pool telemetry counters.
func (p *Pool[R]) Stats() Stats {
	return p.stats.snapshot()
}

// QueueLen returns the number of tasks waiting to be dequeued.
func (p *Pool[R]) QueueLen() int {
	return p.queue.size()
}

// Running reports whether the pool accepts submissions.
func (p *Pool[R]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == stateRunning
}

// Shutdown drains the queue, waits for every worker to exit, and returns the
// pool to a startable state. Every task submitted before the call finishes.
// Calling Shutdown on a pool that is not running is a no-op.
func (p *Pool[R]) Shutdown() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	p.terminate()
}

// ShutdownNow discards every task still waiting in the queue, then waits for
// in-flight tasks to finish naturally and for every worker to exit.
// Discarded tasks keep reporting StateQueued forever; callers that know an
// immediate shutdown happened should treat that as cancelled. ShutdownNow
// also cuts short a graceful Shutdown in progress on another goroutine by
// emptying the queue it is draining.
func (p *Pool[R]) ShutdownNow() {
	p.mu.Lock()
	discarded := p.queue.clear()
	if len(discarded) > 0 {
		p.stats.tasksDiscarded(len(discarded))
		p.logger.Debug("discarded pending tasks", "count", len(discarded))
	}
	p.mu.Unlock()

	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	p.terminate()
}

// Close performs a graceful shutdown if the pool is still running, so a
// deferred Close never leaks worker goroutines.
func (p *Pool[R]) Close() {
	p.Shutdown()
}

// terminate flips the pool to terminating, wakes every worker and blocks
// until all of them have exited. Callers must hold the lifecycle lock.
func (p *Pool[R]) terminate() {
	p.mu.Lock()
	if p.state != stateRunning {
		p.mu.Unlock()
		return
	}
	p.state = stateTerminating
	p.mu.Unlock()

	p.cond.Broadcast()
	p.logger.Debug("waiting for workers to exit")
	p.wg.Wait()

	p.mu.Lock()
	p.state = stateIdle
	p.mu.Unlock()

	if p.debug {
		s := p.stats.snapshot()
		p.logger.Info("pool terminated",
			"submitted", s.Submitted,
			"processed", s.Processed,
			"discarded", s.Discarded,
			"avg_wait", s.AvgWait,
			"avg_queue_len", fmt.Sprintf("%.2f", s.AvgQueueLen))
	}
}

// worker is the loop each worker goroutine runs: wait for a task or a
// termination signal, execute outside the coordination lock, publish the
// result. The wait predicate is re-evaluated after every wake, so spurious
// wakeups are harmless.
func (p *Pool[R]) worker(n int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		it, ok := p.queue.pop()
		for !ok && p.state != stateTerminating {
			p.cond.Wait()
			it, ok = p.queue.pop()
		}
		queued := p.queue.size()
		p.mu.Unlock()

		if !ok {
			// Terminating with nothing left to drain.
			p.logger.Debug("worker exiting", "worker", n)
			return
		}

		wait := time.Since(it.enqueuedAt)
		p.table.setWorking(it.id, wait)
		p.stats.taskStarted(wait, queued)
		if p.debug {
			p.logger.Debug("task started",
				"worker", n, "id", it.id, "wait", wait, "queued", queued)
		}

		result, err := p.run(it.fn)
		p.table.setFinished(it.id, result, err)
		p.stats.taskFinished()

		if err != nil {
			p.logger.Error("task panicked", "worker", n, "id", it.id, "error", err)
		} else if p.debug {
			p.logger.Debug("task finished", "worker", n, "id", it.id, "result", result)
		}
	}
}

// run executes fn, converting a panic into an error so a misbehaving task
// fails only its own status entry instead of killing the worker.
func (p *Pool[R]) run(fn func() R) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(), nil
}
