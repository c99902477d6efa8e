package summarize

import (
	"testing"
	"time"
)

func TestCallStats_EmptySnapshot(t *testing.T) {
	stats := NewCallStats(time.Hour)
	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected count 0, got %d", snap.Count)
	}
}

func TestCallStats_RecordAndSnapshot(t *testing.T) {
	stats := NewCallStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(ms)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Errorf("expected count 5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Errorf("expected min 100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Errorf("expected max 500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Errorf("expected avg 300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Errorf("expected p50 300, got %f", snap.P50Ms)
	}
}

func TestCallStats_NegativeDurationClamped(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record(-50)

	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinMs != 0 {
		t.Errorf("expected single zero sample, got count=%d min=%d", snap.Count, snap.MinMs)
	}
}

func TestCallStats_PrunesOldSamples(t *testing.T) {
	stats := NewCallStats(50 * time.Millisecond)
	stats.Record(100)

	time.Sleep(80 * time.Millisecond)
	stats.Record(200)

	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected old sample pruned, got count %d", snap.Count)
	}
	if snap.MinMs != 200 {
		t.Errorf("expected surviving sample 200, got %d", snap.MinMs)
	}
}

func TestPercentile(t *testing.T) {
	values := []int64{10, 20, 30, 40, 50}

	tests := []struct {
		pct  float64
		want float64
	}{
		{0, 10},
		{50, 30},
		{100, 50},
		{25, 20},
	}
	for _, tt := range tests {
		if got := percentile(values, tt.pct); got != tt.want {
			t.Errorf("percentile(%.0f): expected %f, got %f", tt.pct, tt.want, got)
		}
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}
