package dispatch

import (
	"context"
	"runtime"

	"github.com/maxkimambo/fanout/internal/logger"
)

// maxWorkers bounds the worker count a dispatcher accepts. Non-positive
// counts are valid and mean "one worker per available CPU".
const maxWorkers = 1024

// JobSource is a sequentially-iterable producer of jobs, consumed
// exactly once, in order. Next returns false when the source is
// exhausted.
type JobSource interface {
	Next() (*Job, bool)
}

type sliceSource struct {
	jobs []*Job
	pos  int
}

func (s *sliceSource) Next() (*Job, bool) {
	if s.pos >= len(s.jobs) {
		return nil, false
	}
	j := s.jobs[s.pos]
	s.pos++
	return j, true
}

// SliceSource wraps a finite job list as a JobSource.
func SliceSource(jobs []*Job) JobSource {
	return &sliceSource{jobs: jobs}
}

// Outcome is the per-job result of a batch run: the job's submission
// index and the Result-capable value its extractor picked (NoResult when
// no task produced one).
type Outcome struct {
	JobIndex int
	Value    Result
}

// Dispatcher executes a sequence of jobs either through a bounded worker
// pool or inline in the caller's context, returning one outcome per job
// in submission order either way.
type Dispatcher struct {
	source    JobSource
	extractor Extractor
	parallel  bool
	workers   int
}

// NewDispatcher validates the configuration and builds a dispatcher.
// Every violated constraint is collected into a single ValidationError
// rather than reported one at a time. A nil extractor selects
// FirstResult. A non-positive worker count means one worker per CPU; the
// count is ignored in sequential mode.
func NewDispatcher(source JobSource, extractor Extractor, parallel bool, workers int) (*Dispatcher, error) {
	verr := &ValidationError{}
	if source == nil {
		verr.add("source", "job source must not be nil")
	}
	if workers > maxWorkers {
		verr.add("workers", "worker count %d exceeds the maximum of %d", workers, maxWorkers)
	}
	if len(verr.Violations) > 0 {
		return nil, verr
	}
	if extractor == nil {
		extractor = FirstResult
	}
	return &Dispatcher{
		source:    source,
		extractor: extractor,
		parallel:  parallel,
		workers:   workers,
	}, nil
}

// Parallel reports the configured execution mode.
func (d *Dispatcher) Parallel() bool {
	return d.parallel
}

// WorkerCount resolves the effective worker bound for parallel mode.
func (d *Dispatcher) WorkerCount() int {
	if d.workers <= 0 {
		return runtime.NumCPU()
	}
	return d.workers
}

// Run executes every job from the source and returns one outcome per
// job, in source order. It blocks until the whole batch has been
// collected. A fatal failure (undeclared failure kind, or a failure
// during forgiveness) aborts the batch: no outcomes are returned,
// only the failure. Batch size 1 gets no special treatment; the
// requested mode is always honored.
func (d *Dispatcher) Run(ctx context.Context) ([]Outcome, error) {
	if d.parallel {
		return d.runParallel(ctx)
	}
	return d.runSequential(ctx)
}

func (d *Dispatcher) runSequential(ctx context.Context) ([]Outcome, error) {
	var outcomes []Outcome
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		job, ok := d.source.Next()
		if !ok {
			break
		}
		outcome, err := d.execute(i, job)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	if outcomes == nil {
		outcomes = []Outcome{}
	}
	return outcomes, nil
}

func (d *Dispatcher) runParallel(ctx context.Context) ([]Outcome, error) {
	// Drain the source up front so the submission order, and with it the
	// outcome order, is fixed before any worker starts.
	var jobs []*Job
	for {
		job, ok := d.source.Next()
		if !ok {
			break
		}
		jobs = append(jobs, job)
	}

	for i, job := range jobs {
		if err := ensureTransferable(i, job); err != nil {
			return nil, err
		}
	}

	workers := d.WorkerCount()
	logger.WithFields(map[string]any{
		"jobs":    len(jobs),
		"workers": workers,
	}).Debug("Dispatching batch to worker pool")

	pool := newWorkerPool(workers)
	return pool.run(ctx, jobs, d.execute)
}

// execute is the per-job wrapper submitted to either execution mode:
// run the normal pass, recover declared failures through forgiveness,
// then extract the job's single meaningful outcome.
func (d *Dispatcher) execute(idx int, job *Job) (Outcome, error) {
	failedAt, err := job.Run()
	if err != nil {
		if !job.Catches(err) {
			return Outcome{}, &JobError{JobIndex: idx, Err: err}
		}
		logger.WithFields(map[string]any{
			"job":   idx,
			"task":  failedAt,
			"error": err.Error(),
		}).Debug("Recovering from declared failure")
		if ferr := job.AskForgiveness(failedAt, err); ferr != nil {
			return Outcome{}, &JobError{JobIndex: idx, Err: ferr}
		}
	}
	return Outcome{JobIndex: idx, Value: d.extractor(job)}, nil
}
