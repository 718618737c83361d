package pool

import (
	"sort"
	"sync"
	"time"
)

// State is the lifecycle state of a submitted task.
// Transitions are monotonic: Queued -> Working -> Finished, never reversed.
type State int

const (
	// StateQueued means the task is waiting in the queue and has not been
	// picked up by a worker yet.
	StateQueued State = iota

	// StateWorking means a worker has dequeued the task and is executing it.
	StateWorking

	// StateFinished means the task ran to completion and its result (or the
	// error recovered from its panic) is available.
	StateFinished
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateWorking:
		return "working"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// TaskStatus is the externally visible lifecycle record of one task.
type TaskStatus[R any] struct {
	// State is the current lifecycle state.
	State State

	// Result holds the task's return value. It is valid only when State is
	// StateFinished and Err is nil.
	Result R

	// Err is set when the task panicked; the panic value is wrapped here
	// instead of taking the worker down.
	Err error

	// Wait is how long the task sat in the queue. Zero until dequeued.
	Wait time.Duration

	// Run is how long the task executed. Zero until finished.
	Run time.Duration
}

// TaskInfo pairs a TaskStatus with its task id for reporting. The result is
// carried as an untyped value so report renderers need not be generic.
type TaskInfo struct {
	ID     ID
	State  State
	Result interface{}
	Err    error
	Wait   time.Duration
	Run    time.Duration
}

type entry[R any] struct {
	state     State
	result    R
	err       error
	wait      time.Duration
	run       time.Duration
	startedAt time.Time
}

// statusTable maps task ids to lifecycle entries. Each entry has exactly one
// writer for its lifetime (the worker that dequeued it); the table mutex
// protects map growth and keeps entry reads race-free for pollers. Entries
// are never deleted while the pool object lives, so finished tasks can be
// queried long after they ran.
type statusTable[R any] struct {
	mu      sync.RWMutex
	entries map[ID]*entry[R]
}

func newStatusTable[R any]() *statusTable[R] {
	return &statusTable[R]{entries: make(map[ID]*entry[R])}
}

// setQueued creates the entry for a freshly submitted task. The caller must
// guarantee this happens before any worker can observe the id.
func (t *statusTable[R]) setQueued(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = &entry[R]{state: StateQueued}
}

// setWorking marks the task as being executed and records its queue wait.
func (t *statusTable[R]) setWorking(id ID, wait time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[id]
	e.state = StateWorking
	e.wait = wait
	e.startedAt = time.Now()
}

// setFinished stores the result (or the recovered panic) and marks the task
// finished. The state is terminal; the stored result never changes again.
func (t *statusTable[R]) setFinished(id ID, result R, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[id]
	e.state = StateFinished
	e.result = result
	e.err = err
	e.run = time.Since(e.startedAt)
}

// get returns the status for id, reporting false for ids never submitted.
// It never blocks on task execution.
func (t *statusTable[R]) get(id ID) (TaskStatus[R], bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[id]
	if !ok {
		return TaskStatus[R]{}, false
	}
	return TaskStatus[R]{
		State:  e.state,
		Result: e.result,
		Err:    e.err,
		Wait:   e.wait,
		Run:    e.run,
	}, true
}

// all returns a snapshot of every known task sorted by id.
func (t *statusTable[R]) all() []TaskInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	infos := make([]TaskInfo, 0, len(t.entries))
	for id, e := range t.entries {
		info := TaskInfo{
			ID:    id,
			State: e.state,
			Err:   e.err,
			Wait:  e.wait,
			Run:   e.run,
		}
		if e.state == StateFinished && e.err == nil {
			info.Result = e.result
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// size returns the number of known tasks.
func (t *statusTable[R]) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
