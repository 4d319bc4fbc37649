package sim

import "time"

// RunState classifies the controller's lifecycle.
type RunState int

const (
	Idle RunState = iota
	Running
	Paused
	Stopped
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// StopReason explains why the run loop exited.
type StopReason string

const (
	ReasonCanceled  StopReason = "canceled"
	ReasonExtinct   StopReason = "no living cells remaining"
	ReasonCompleted StopReason = "generation limit reached"
)

// Grid is the read-only board view handed to renderers. Implementations
// must not retain it beyond the call.
type Grid interface {
	Width() int
	Height() int
	Generation() int
	Get(x, y int) bool
}

// Stats are derived per-generation statistics published with each frame.
type Stats struct {
	Generation int
	Population int
}

// Renderer consumes board snapshots. It must not mutate the grid.
type Renderer interface {
	Render(g Grid, s Stats)
}

// Config holds run-loop parameters.
type Config struct {
	// Delay is the blocking wait between generations.
	Delay time.Duration
	// MaxGenerations bounds the run; 0 means unbounded.
	MaxGenerations int
}

// Result summarizes a completed run.
type Result struct {
	Generations int
	Population  int
	Reason      StopReason
	// PopulationHistory holds the living-cell count at every published
	// frame, the initial one included.
	PopulationHistory []int
}
