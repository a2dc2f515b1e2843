package batch

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/targetrun/targetrun/internal/execute"
	"github.com/targetrun/targetrun/internal/metrics"
	"github.com/targetrun/targetrun/internal/stats"
	"github.com/targetrun/targetrun/internal/target"
)

// JobResult is the outcome of one job.
type JobResult struct {
	Job      Job
	Result   execute.Result
	Err      error
	Duration time.Duration
}

// Outcome classifies the result for aggregation.
func (r JobResult) Outcome() stats.Outcome {
	switch {
	case errors.Is(r.Err, execute.ErrCommandNotFound):
		return stats.OutcomeNotFound
	case r.Err != nil || r.Result.Status != 0:
		return stats.OutcomeFailed
	default:
		return stats.OutcomeSuccess
	}
}

// Callbacks notify observers of job lifecycle events. Either may be nil.
// They are called from worker goroutines.
type Callbacks struct {
	OnStart func(index int, job Job)
	OnDone  func(index int, res JobResult)
}

// Runner executes a job list with bounded concurrency. Each job owns its
// own child process; a failing job never stops the others.
type Runner struct {
	// Options applies to every job. AllowFailure only controls whether a
	// job's non-zero exit is surfaced as JobResult.Err; the batch always
	// runs to completion either way.
	Options execute.Options

	// Concurrency is the worker count; values below 1 mean 1.
	Concurrency int

	Callbacks  Callbacks
	Logger     *slog.Logger
	Aggregator *stats.Aggregator
	Metrics    *metrics.Collector
}

// Run executes all jobs and returns their results in job order, plus the
// number of jobs that did not succeed.
func (r *Runner) Run(jobs []Job) ([]JobResult, int) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := r.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]JobResult, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = r.runOne(i, jobs[i], logger)
			}
		}()
	}
	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.Outcome() != stats.OutcomeSuccess {
			failed++
		}
	}
	return results, failed
}

func (r *Runner) runOne(index int, job Job, logger *slog.Logger) JobResult {
	if r.Callbacks.OnStart != nil {
		r.Callbacks.OnStart(index, job)
	}
	logger.Debug("job_starting", "job", job.Name)

	start := time.Now()
	result, err := execute.Run(job.Invocation, r.Options)
	res := JobResult{
		Job:      job,
		Result:   result,
		Err:      err,
		Duration: time.Since(start),
	}

	r.record(res)
	if err != nil {
		logger.Warn("job_failed", "job", job.Name, "error", err)
	} else {
		logger.Debug("job_done", "job", job.Name, "status", result.Status, "duration", res.Duration)
	}

	if r.Callbacks.OnDone != nil {
		r.Callbacks.OnDone(index, res)
	}
	return res
}

func (r *Runner) record(res JobResult) {
	outcome := res.Outcome()
	if r.Aggregator != nil {
		r.Aggregator.Record(outcome, res.Result.Status, res.Duration)
	}
	if r.Metrics == nil {
		return
	}
	switch outcome {
	case stats.OutcomeNotFound:
		r.Metrics.RecordExecution(metrics.OutcomeNotFound, res.Duration)
		r.Metrics.RecordResolution(metrics.ResolutionMiss)
	case stats.OutcomeFailed:
		r.Metrics.RecordExecution(metrics.OutcomeFailed, res.Duration)
		r.Metrics.RecordResolution(r.resolutionKind(res.Job))
	default:
		if r.Options.Simulate {
			r.Metrics.RecordExecution(metrics.OutcomeSimulated, res.Duration)
		} else {
			r.Metrics.RecordExecution(metrics.OutcomeSuccess, res.Duration)
		}
		r.Metrics.RecordResolution(r.resolutionKind(res.Job))
	}
}

// resolutionKind classifies how a completed job's command was resolved.
// Jobs that failed resolution entirely are recorded as misses before
// this is consulted.
func (r *Runner) resolutionKind(job Job) string {
	if target.IsTarget(job.Invocation.Command(), r.Options.Prefix, r.Options.Registry) {
		return metrics.ResolutionTarget
	}
	return metrics.ResolutionPath
}
