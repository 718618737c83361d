// Package pool implements a fixed-size worker pool that executes submitted
// callables from a single shared FIFO queue and tracks each task's lifecycle
// by an assigned id.
//
// # Basic Usage
//
// Create a pool, start workers, submit tasks, and poll results by id:
//
//	p := pool.New[uint64](pool.WithLogger(logger))
//	if err := p.Start(4); err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	id, err := p.Submit(func() uint64 {
//	    // Perform work
//	    return 42
//	})
//
//	st, err := p.Status(id)
//	if err == nil && st.State == pool.StateFinished {
//	    fmt.Println(st.Result)
//	}
//
// # Lifecycle
//
// Every accepted task moves through StateQueued -> StateWorking ->
// StateFinished, never backwards, and a finished task reports the same
// result forever. Status entries are never deleted, so tasks can be queried
// long after they ran.
//
// # Shutdown
//
// Shutdown drains the queue before stopping: every task submitted before the
// call finishes. ShutdownNow discards not-yet-started tasks and only lets
// in-flight ones finish; discarded tasks remain StateQueued forever. Both
// block until all workers have exited, after which the pool may be started
// again.
//
// # Concurrency Guarantees
//
//   - Tasks are dequeued in strict submission order (no completion-order
//     guarantee across workers).
//   - Submit and Status never block on task execution.
//   - One coordination lock plus one condition variable sequence all
//     scheduling state; the wait predicate is re-evaluated after every wake,
//     so no wakeup is ever lost.
//   - A task that panics fails only its own status entry; the worker
//     recovers and keeps serving the queue.
//
// # Telemetry
//
// The pool counts tasks submitted, processed and discarded, and tracks
// average queue wait and observed queue length. Counters live behind their
// own lock, are reset on Start, and are reported at shutdown when debug mode
// is enabled.
package pool
