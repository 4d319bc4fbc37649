package analysis

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Frames != 0 || s.Extinct {
		t.Errorf("empty series should yield zero summary, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{9, 6, 3, 1, 0})
	if s.Frames != 5 {
		t.Errorf("expected 5 frames, got %d", s.Frames)
	}
	if s.Min != 0 || s.Max != 9 {
		t.Errorf("expected min 0 max 9, got min %d max %d", s.Min, s.Max)
	}
	if s.Mean != 3.8 {
		t.Errorf("expected mean 3.8, got %f", s.Mean)
	}
	if s.Final != 0 || !s.Extinct {
		t.Errorf("expected extinct final state, got %+v", s)
	}
}

func TestSummarizeStable(t *testing.T) {
	s := Summarize([]float64{4, 4, 4, 4})
	if s.Min != 4 || s.Max != 4 || s.Mean != 4 || s.Extinct {
		t.Errorf("stable series mis-summarized: %+v", s)
	}
}

func TestPopulationPeriod(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   int
	}{
		{"constant", []float64{4, 4, 4, 4, 4, 4}, 1},
		{"period two", []float64{10, 6, 8, 6, 8, 6, 8, 6, 8}, 2},
		{"period three", []float64{1, 2, 3, 1, 2, 3, 1, 2, 3}, 3},
		{"aperiodic", []float64{1, 2, 4, 8, 16, 32, 64, 3, 9}, 0},
		{"too short for three cycles", []float64{6, 8, 6, 8}, 0},
		{"settles after transient", []float64{50, 31, 12, 7, 7, 7, 7, 7, 7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopulationPeriod(tt.series, 10); got != tt.want {
				t.Errorf("PopulationPeriod = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPopulationPeriodRespectsMax(t *testing.T) {
	series := []float64{1, 2, 3, 1, 2, 3, 1, 2, 3}
	if got := PopulationPeriod(series, 2); got != 0 {
		t.Errorf("period above maxPeriod should not be reported, got %d", got)
	}
}
