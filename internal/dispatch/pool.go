package dispatch

import (
	"context"
	"sync"

	"github.com/maxkimambo/fanout/internal/logger"
)

// workerPool fans a fixed batch of jobs out to a bounded set of workers
// and collects one outcome per job in submission order. The pool lives
// for a single run: acquired, used, released.
type workerPool struct {
	workers int

	mu       sync.Mutex
	fatal    error
	hasFatal bool
}

func newWorkerPool(workers int) *workerPool {
	if workers < 1 {
		workers = 1
	}
	return &workerPool{workers: workers}
}

type indexedJob struct {
	idx int
	job *Job
}

// run executes every job through exec and blocks until all workers have
// drained. The first fatal failure wins: workers stop picking up new
// jobs, in-flight jobs finish (there is no cancellation), and run
// returns the failure with no outcomes.
func (p *workerPool) run(ctx context.Context, jobs []*Job, exec func(int, *Job) (Outcome, error)) ([]Outcome, error) {
	feed := make(chan indexedJob)
	outcomes := make([]Outcome, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.WithFields(map[string]any{"worker": id}).Debug("Worker started")
			defer logger.WithFields(map[string]any{"worker": id}).Debug("Worker stopped")
			for item := range feed {
				outcome, err := exec(item.idx, item.job)
				if err != nil {
					p.recordFatal(err)
					continue
				}
				// Each slot is written by exactly one worker.
				outcomes[item.idx] = outcome
			}
		}(w + 1)
	}

	for i, job := range jobs {
		if p.aborted() || ctx.Err() != nil {
			break
		}
		feed <- indexedJob{idx: i, job: job}
	}
	close(feed)
	wg.Wait()

	if err := p.firstFatal(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (p *workerPool) recordFatal(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasFatal {
		p.fatal = err
		p.hasFatal = true
	}
}

func (p *workerPool) aborted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasFatal
}

func (p *workerPool) firstFatal() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fatal
}
