package stats

import (
	"testing"
	"time"
)

func TestAggregator_Counts(t *testing.T) {
	a := NewAggregator()
	a.Record(OutcomeSuccess, 0, 100*time.Millisecond)
	a.Record(OutcomeSuccess, 0, 200*time.Millisecond)
	a.Record(OutcomeFailed, 2, 50*time.Millisecond)
	a.Record(OutcomeNotFound, 0, 0)

	snap := a.Snapshot()
	if snap.Total != 4 {
		t.Errorf("Total = %d, want 4", snap.Total)
	}
	if snap.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", snap.Succeeded)
	}
	if snap.Failed != 1 {
		t.Errorf("Failed = %d, want 1", snap.Failed)
	}
	if snap.NotFound != 1 {
		t.Errorf("NotFound = %d, want 1", snap.NotFound)
	}
	if snap.ExitCodes[2] != 1 {
		t.Errorf("ExitCodes[2] = %d, want 1", snap.ExitCodes[2])
	}
	if snap.ExitCodes[0] != 2 {
		t.Errorf("ExitCodes[0] = %d, want 2", snap.ExitCodes[0])
	}
}

func TestAggregator_Durations(t *testing.T) {
	a := NewAggregator()
	for i := 1; i <= 100; i++ {
		a.Record(OutcomeSuccess, 0, time.Duration(i)*time.Millisecond)
	}

	snap := a.Snapshot()
	if snap.P50 <= 0 {
		t.Errorf("P50 = %v, want > 0", snap.P50)
	}
	if snap.P50 > snap.P95 || snap.P95 > snap.P99 {
		t.Errorf("percentiles not monotonic: P50=%v P95=%v P99=%v",
			snap.P50, snap.P95, snap.P99)
	}
	if snap.Max != 100*time.Millisecond {
		t.Errorf("Max = %v, want 100ms", snap.Max)
	}
	if snap.Mean <= 0 {
		t.Errorf("Mean = %v, want > 0", snap.Mean)
	}
}

func TestAggregator_Empty(t *testing.T) {
	snap := NewAggregator().Snapshot()
	if snap.Total != 0 || snap.P50 != 0 || snap.Mean != 0 {
		t.Errorf("empty snapshot not zero: %+v", snap)
	}
}

func TestAggregator_ConcurrentRecord(t *testing.T) {
	a := NewAggregator()
	done := make(chan struct{})
	for w := 0; w < 4; w++ {
		go func() {
			for i := 0; i < 250; i++ {
				a.Record(OutcomeSuccess, 0, time.Millisecond)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < 4; w++ {
		<-done
	}
	if snap := a.Snapshot(); snap.Succeeded != 1000 {
		t.Errorf("Succeeded = %d, want 1000", snap.Succeeded)
	}
}
