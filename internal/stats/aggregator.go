// Package stats aggregates per-job results for batch runs: counts by
// outcome, exit-code distribution, and duration percentiles.
package stats

import (
	"sync"
	"time"

	"github.com/influxdata/tdigest"
)

// Outcome classifies how a job ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
	OutcomeNotFound
)

// Aggregator collects job results. Safe for concurrent use.
type Aggregator struct {
	mu sync.Mutex

	start     time.Time
	succeeded int
	failed    int
	notFound  int
	exitCodes map[int]int

	durations *tdigest.TDigest
	totalDur  time.Duration
	maxDur    time.Duration
}

// NewAggregator creates an Aggregator; the batch clock starts now.
func NewAggregator() *Aggregator {
	return &Aggregator{
		start:     time.Now(),
		exitCodes: make(map[int]int),
		durations: tdigest.NewWithCompression(100),
	}
}

// Record adds one finished job.
func (a *Aggregator) Record(outcome Outcome, exitCode int, d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch outcome {
	case OutcomeSuccess:
		a.succeeded++
	case OutcomeFailed:
		a.failed++
	case OutcomeNotFound:
		a.notFound++
		// No child ran; duration would only skew the digest.
		return
	}
	a.exitCodes[exitCode]++
	a.durations.Add(d.Seconds(), 1)
	a.totalDur += d
	if d > a.maxDur {
		a.maxDur = d
	}
}

// Snapshot is a point-in-time view of the aggregate.
type Snapshot struct {
	Timestamp time.Time
	Elapsed   time.Duration

	Total     int
	Succeeded int
	Failed    int
	NotFound  int
	ExitCodes map[int]int

	// Duration distribution over jobs that actually ran.
	P50, P95, P99 time.Duration
	Max           time.Duration
	Mean          time.Duration
}

// Snapshot computes the current aggregate view.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	ran := a.succeeded + a.failed
	snap := Snapshot{
		Timestamp: time.Now(),
		Elapsed:   time.Since(a.start),
		Total:     ran + a.notFound,
		Succeeded: a.succeeded,
		Failed:    a.failed,
		NotFound:  a.notFound,
		ExitCodes: make(map[int]int, len(a.exitCodes)),
		Max:       a.maxDur,
	}
	for code, n := range a.exitCodes {
		snap.ExitCodes[code] = n
	}
	if ran > 0 {
		snap.P50 = secondsToDuration(a.durations.Quantile(0.50))
		snap.P95 = secondsToDuration(a.durations.Quantile(0.95))
		snap.P99 = secondsToDuration(a.durations.Quantile(0.99))
		snap.Mean = a.totalDur / time.Duration(ran)
	}
	return snap
}

func secondsToDuration(s float64) time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
