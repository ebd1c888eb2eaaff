package engine

import (
	"context"
	"sync"
)

// workerPool is a fixed-size goroutine pool with a bounded input queue.
// Worker i always runs as stream i, so per-stream state never crosses goroutines.
// Besides the shared queue every worker owns a lane; jobs submitted to a lane
// run on that stream in submission order.
type workerPool[T any] struct {
	queue   chan T
	lanes   []chan T
	process func(ctx context.Context, stream int, t T)
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// newWorkerPool creates and starts a pool with n streams and queue capacity cap.
// Each lane holds cap/n jobs, at least one.
func newWorkerPool[T any](ctx context.Context, n, cap int, fn func(context.Context, int, T)) *workerPool[T] {
	laneCap := max(cap/max(n, 1), 1)
	p := &workerPool[T]{
		queue:   make(chan T, cap),
		lanes:   make([]chan T, n),
		process: fn,
	}
	for i := range p.lanes {
		p.lanes[i] = make(chan T, laneCap)
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func(stream int) {
			defer p.wg.Done()
			p.run(ctx, stream)
		}(i)
	}
	return p
}

func (p *workerPool[T]) run(ctx context.Context, stream int) {
	queue, lane := p.queue, p.lanes[stream]
	for queue != nil || lane != nil {
		select {
		case t, ok := <-queue:
			if !ok {
				queue = nil
				continue
			}
			p.process(ctx, stream, t)
		case t, ok := <-lane:
			if !ok {
				lane = nil
				continue
			}
			p.process(ctx, stream, t)
		case <-ctx.Done():
			return
		}
	}
}

// Submit enqueues a job for any stream without blocking (returns false if full or drained).
func (p *workerPool[T]) Submit(t T) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- t:
		return true
	default:
		return false
	}
}

// SubmitTo enqueues a job on stream's lane without blocking. It returns false
// if the lane is full, the pool is drained or stream is out of range.
func (p *workerPool[T]) SubmitTo(stream int, t T) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || stream < 0 || stream >= len(p.lanes) {
		return false
	}
	select {
	case p.lanes[stream] <- t:
		return true
	default:
		return false
	}
}

// Drain closes the queue and lanes and waits for all workers to finish.
func (p *workerPool[T]) Drain() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
		for _, l := range p.lanes {
			close(l)
		}
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// QueueLen returns how many jobs are currently in the shared queue.
func (p *workerPool[T]) QueueLen() int {
	return len(p.queue)
}

// QueueCap returns the shared queue capacity.
func (p *workerPool[T]) QueueCap() int {
	return cap(p.queue)
}
