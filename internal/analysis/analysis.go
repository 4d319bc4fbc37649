// Package analysis derives statistics from recorded population series.
package analysis

// Summary aggregates one population series.
type Summary struct {
	Frames  int
	Min     int
	Max     int
	Mean    float64
	Final   int
	Extinct bool
}

// Summarize reduces a population series to its summary statistics. An
// empty series yields the zero Summary.
func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}

	s := Summary{
		Frames: len(series),
		Min:    int(series[0]),
		Max:    int(series[0]),
	}

	sum := 0.0
	for _, v := range series {
		pop := int(v)
		if pop < s.Min {
			s.Min = pop
		}
		if pop > s.Max {
			s.Max = pop
		}
		sum += v
	}

	s.Mean = sum / float64(len(series))
	s.Final = int(series[len(series)-1])
	s.Extinct = s.Final == 0
	return s
}

// PopulationPeriod finds the smallest period the tail of the series
// settles into, up to maxPeriod. A candidate counts only if the series
// holds it for at least three full cycles. Returns 0 when no period is
// found. The population period is a lower bound on the grid period: a
// blinker's grid oscillates with period 2 but its population period
// is 1.
func PopulationPeriod(series []float64, maxPeriod int) int {
	const minCycles = 3

	for p := 1; p <= maxPeriod; p++ {
		span := p * minCycles
		if span > len(series) {
			break
		}
		tail := series[len(series)-span:]
		periodic := true
		for i := p; i < len(tail); i++ {
			if tail[i] != tail[i-p] {
				periodic = false
				break
			}
		}
		if periodic {
			return p
		}
	}
	return 0
}
