package client

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Executor is the work-queue abstraction both pools of the mock layer are
// built on. Implementations decide where and when a submitted task runs;
// tests typically use SyncExecutor so timing stays deterministic.
type Executor interface {
	Execute(task func())
}

// SyncExecutor runs every task inline on the submitting goroutine.
type SyncExecutor struct{}

// Execute implements Executor.
func (SyncExecutor) Execute(task func()) {
	task()
}

// GoExecutor runs every task on its own goroutine.
type GoExecutor struct{}

// Execute implements Executor.
func (GoExecutor) Execute(task func()) {
	go task()
}

// PoolExecutor runs tasks on a fixed set of worker goroutines fed from a
// bounded queue. Execute blocks once the queue is full.
type PoolExecutor struct {
	tasks chan func()
	wg    sync.WaitGroup
}

// NewPoolExecutor creates a pool with the given worker count and queue size.
func NewPoolExecutor(workers, queueSize int) *PoolExecutor {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &PoolExecutor{tasks: make(chan func(), queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Execute implements Executor. Calling Execute after Close panics.
func (p *PoolExecutor) Execute(task func()) {
	p.tasks <- task
}

// Close stops accepting tasks and waits for queued work to drain.
func (p *PoolExecutor) Close() {
	close(p.tasks)
	p.wg.Wait()
}

// ThrottledExecutor paces submissions to an inner executor with a token
// bucket, simulating a bandwidth-constrained pipe in front of the pool.
type ThrottledExecutor struct {
	inner   Executor
	limiter *rate.Limiter
}

// NewThrottledExecutor wraps inner so that at most perSecond tasks per second
// are admitted, with the given burst allowance.
func NewThrottledExecutor(inner Executor, perSecond float64, burst int) *ThrottledExecutor {
	return &ThrottledExecutor{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Execute implements Executor. It blocks the submitter until the limiter
// admits the task, then hands it to the inner executor.
func (t *ThrottledExecutor) Execute(task func()) {
	if err := t.limiter.Wait(context.Background()); err != nil {
		return
	}
	t.inner.Execute(task)
}
