package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/golife/internal/life"
	"github.com/san-kum/golife/internal/pattern"
)

// Runner owns a board and drives it through generations. The automatic
// loop runs in Run; every other method is a command issued from outside.
// Exactly one Run loop may be active at a time, so no two advances ever
// overlap and renderers always see a fully committed grid.
type Runner struct {
	mu       sync.Mutex
	cond     *sync.Cond
	board    *life.Board
	state    RunState
	cfg      Config
	rng      *rand.Rand
	renderer Renderer
	canceled bool
	stopCh   chan struct{}
}

// NewRunner returns an Idle runner owning board. The renderer may be nil
// for headless runs. A nil rng gets a time-seeded source.
func NewRunner(board *life.Board, renderer Renderer, rng *rand.Rand, cfg Config) *Runner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	r := &Runner{
		board:    board,
		state:    Idle,
		cfg:      cfg,
		rng:      rng,
		renderer: renderer,
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Run executes the automatic loop until cancellation, extinction, or the
// generation cap. It blocks the calling goroutine; Pause, Resume, and
// Cancel may be issued concurrently. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	if r.state == Running || r.state == Paused {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: run loop already active", life.ErrBusy)
	}
	r.state = Running
	r.canceled = false
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	// Bridge context cancellation onto the cooperative cancel flag so the
	// pause wait and the delay wait both wake up.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.Cancel()
		case <-done:
		}
	}()

	result := &Result{}
	for {
		r.mu.Lock()
		board := r.board
		stats := Stats{Generation: board.Generation(), Population: board.Population()}
		r.mu.Unlock()

		if r.renderer != nil {
			r.renderer.Render(board, stats)
		}
		result.PopulationHistory = append(result.PopulationHistory, stats.Population)

		r.mu.Lock()
		for {
			if r.canceled {
				return r.finish(result, ReasonCanceled), nil
			}
			if r.board.IsEmpty() {
				return r.finish(result, ReasonExtinct), nil
			}
			if r.cfg.MaxGenerations > 0 && result.Generations >= r.cfg.MaxGenerations {
				return r.finish(result, ReasonCompleted), nil
			}
			if r.state != Paused {
				break
			}
			r.cond.Wait()
		}
		r.board = life.Advance(r.board)
		result.Generations++
		delay := r.cfg.Delay
		r.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-stopCh:
			}
		}
	}
}

// finish transitions to Stopped and seals the result. Caller holds mu.
func (r *Runner) finish(result *Result, reason StopReason) *Result {
	r.state = Stopped
	result.Population = r.board.Population()
	result.Reason = reason
	r.mu.Unlock()
	return result
}

// Step advances the board exactly once, synchronously. Permitted in any
// state; manual stepping is independent of the automatic loop.
func (r *Runner) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = life.Advance(r.board)
}

// Pause suspends the automatic loop before its next advance. No-op
// unless Running.
func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Running {
		r.state = Paused
	}
}

// Resume continues a Paused loop.
func (r *Runner) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Paused {
		r.state = Running
		r.cond.Broadcast()
	}
}

// Cancel requests a transition to Stopped from any state. The run loop
// is guaranteed to exit before performing another advance or sleep.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canceled {
		return
	}
	r.canceled = true
	if r.stopCh != nil {
		close(r.stopCh)
		r.stopCh = nil
	}
	if r.state == Idle || r.state == Stopped {
		r.state = Stopped
	}
	r.cond.Broadcast()
}

// Reset clears the board. Rejected while the loop is active.
func (r *Runner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireIdle(); err != nil {
		return err
	}
	r.board.Clear()
	return nil
}

// Randomize re-seeds the board with Bernoulli trials. Rejected while
// the loop is active.
func (r *Runner) Randomize(probability float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireIdle(); err != nil {
		return err
	}
	return r.board.Randomize(r.rng, probability)
}

// Resize discards the board and constructs a fresh one. Rejected while
// the loop is active.
func (r *Runner) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireIdle(); err != nil {
		return err
	}
	board, err := life.NewBoard(width, height)
	if err != nil {
		return err
	}
	r.board = board
	return nil
}

// Place stamps a pattern at (x, y). Rejected while the loop is active.
func (r *Runner) Place(p pattern.Pattern, x, y int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireIdle(); err != nil {
		return err
	}
	pattern.Stamp(r.board, p, x, y)
	return nil
}

func (r *Runner) requireIdle() error {
	if r.state == Running || r.state == Paused {
		return fmt.Errorf("%w: %s", life.ErrBusy, r.state)
	}
	return nil
}

// State returns the current run-state.
func (r *Runner) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Grid returns the current board as a read-only snapshot. Committed
// boards are never mutated in place, so the snapshot stays consistent
// even if the loop advances past it.
func (r *Runner) Grid() Grid {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board
}

// Stats returns the current generation and population.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Generation: r.board.Generation(), Population: r.board.Population()}
}

// Delay returns the configured inter-generation delay.
func (r *Runner) Delay() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Delay
}

// SetDelay adjusts the inter-generation delay, flooring at zero. Takes
// effect from the next loop iteration.
func (r *Runner) SetDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d < 0 {
		d = 0
	}
	r.cfg.Delay = d
}
