// Package experiment runs headless batches of simulations across a
// range of seeding densities and aggregates the outcomes.
package experiment

import (
	"context"
	"math/rand"

	"github.com/san-kum/golife/internal/life"
	"github.com/san-kum/golife/internal/sim"
)

type Config struct {
	Width  int
	Height int
	// Probabilities are the seeding densities to sweep over.
	Probabilities []float64
	// Trials is the number of boards seeded per density.
	Trials int
	// MaxGenerations bounds each trial.
	MaxGenerations int
	Seed           int64
}

// Outcome aggregates all trials run at one seeding density.
type Outcome struct {
	Probability     float64
	Trials          int
	Extinctions     int
	MeanFinalPop    float64
	MeanGenerations float64
}

type Sweep struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config) *Sweep {
	if cfg.Trials <= 0 {
		cfg.Trials = 10
	}
	if cfg.MaxGenerations <= 0 {
		cfg.MaxGenerations = 200
	}
	return &Sweep{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Run executes every trial and returns one outcome per density, in the
// order the densities were given. Stops early with ctx.Err() on
// cancellation.
func (s *Sweep) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(s.cfg.Probabilities))

	for _, p := range s.cfg.Probabilities {
		outcome := Outcome{Probability: p, Trials: s.cfg.Trials}

		totalPop := 0
		totalGens := 0
		for i := 0; i < s.cfg.Trials; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			board, err := life.NewBoard(s.cfg.Width, s.cfg.Height)
			if err != nil {
				return nil, err
			}
			if err := board.Randomize(s.rng, p); err != nil {
				return nil, err
			}

			runner := sim.NewRunner(board, nil, s.rng, sim.Config{
				MaxGenerations: s.cfg.MaxGenerations,
			})
			result, err := runner.Run(ctx)
			if err != nil {
				return nil, err
			}
			if result.Reason == sim.ReasonCanceled {
				return nil, ctx.Err()
			}

			totalPop += result.Population
			totalGens += result.Generations
			if result.Population == 0 {
				outcome.Extinctions++
			}
		}

		outcome.MeanFinalPop = float64(totalPop) / float64(s.cfg.Trials)
		outcome.MeanGenerations = float64(totalGens) / float64(s.cfg.Trials)
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// DensityRange builds an evenly spaced density sequence from lo to hi
// inclusive. steps below 2 collapses to just lo.
func DensityRange(lo, hi float64, steps int) []float64 {
	if steps < 2 {
		return []float64{lo}
	}
	out := make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
