// Package parallel provides the fan-out/fan-in worker pool shared by the
// pipeline stages. Each stage hands the pool a flat slice of independent
// task bodies; the pool distributes them across a fixed set of goroutines
// and waits for all of them to finish.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size pool of worker goroutines.
//
// Workers primarily pull from their own queue but steal from other workers
// when idle, which balances load when some islands are much slower to
// process than others.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers. If workers is 0
// or negative, GOMAXPROCS is used. Workers start immediately.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(myQueue)
			return
		case work := <-myQueue:
			if work != nil {
				work()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// Nothing to steal anywhere, block on our own queue.
				select {
				case <-p.done:
					p.drain(myQueue)
					return
				case work := <-myQueue:
					if work != nil {
						work()
					}
				}
			}
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal takes work from another worker's queue, or returns nil if every
// other queue is empty.
func (p *Pool) steal(myID int) func() {
	for i := range p.queues {
		if i == myID {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes the work items round-robin across workers and
// blocks until every item has run. A closed pool runs nothing.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))

	for i, fn := range work {
		fn := fn
		wrapped := func() {
			defer pending.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			pending.Done()
		}
	}

	pending.Wait()
}

// Close stops accepting work, waits for queued work to finish, and stops
// all workers. Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}
