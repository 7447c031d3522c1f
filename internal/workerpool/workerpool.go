// Package workerpool provides a bounded generic worker pool and an
// order-preserving parallel map built on it.
package workerpool

import (
	"runtime"
	"sync"
)

// maxWorkers caps the pool size regardless of what callers request.
const maxWorkers = 32

// DefaultWorkers returns the worker count used when a caller passes 0.
func DefaultWorkers() int {
	return min(runtime.GOMAXPROCS(0), maxWorkers)
}

// Pool distributes jobs across a fixed number of goroutines and
// collects their results.
type Pool[Job any, Result any] struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	wg         sync.WaitGroup
}

// New creates a pool with the specified number of workers.
// If numWorkers is 0 or negative, it defaults to DefaultWorkers().
// If numJobs is less than numWorkers, the pool is sized to match numJobs.
func New[Job any, Result any](numWorkers, numJobs int) *Pool[Job, Result] {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}
	numWorkers = min(numWorkers, maxWorkers)
	if numJobs > 0 {
		numWorkers = min(numWorkers, numJobs)
	}

	return &Pool[Job, Result]{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numJobs),
		results:    make(chan Result, numJobs),
	}
}

// Workers reports how many goroutines Start will launch.
func (p *Pool[Job, Result]) Workers() int {
	return p.numWorkers
}

// Start launches the workers. workerFn is called once per job.
func (p *Pool[Job, Result]) Start(workerFn func(Job) Result) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- workerFn(job)
			}
		}()
	}
}

// Submit adds a job to the queue.
func (p *Pool[Job, Result]) Submit(job Job) {
	p.jobs <- job
}

// Close closes the job queue. The results channel is closed once every
// worker has finished.
func (p *Pool[Job, Result]) Close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// Results returns the results channel for collecting worker outputs.
func (p *Pool[Job, Result]) Results() <-chan Result {
	return p.results
}

type indexed[T any] struct {
	i int
	v T
}

// Map applies fn to every element of in and returns the outputs in input
// order. With workers == 1, or fewer than two inputs, it runs on the
// calling goroutine.
func Map[In any, Out any](workers int, in []In, fn func(i int, v In) Out) []Out {
	out := make([]Out, len(in))
	if workers == 1 || len(in) < 2 {
		for i, v := range in {
			out[i] = fn(i, v)
		}
		return out
	}

	pool := New[indexed[In], indexed[Out]](workers, len(in))
	pool.Start(func(job indexed[In]) indexed[Out] {
		return indexed[Out]{i: job.i, v: fn(job.i, job.v)}
	})
	for i, v := range in {
		pool.Submit(indexed[In]{i: i, v: v})
	}
	pool.Close()

	for r := range pool.Results() {
		out[r.i] = r.v
	}
	return out
}
