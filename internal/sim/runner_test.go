package sim_test

import (
	"context"
	"math/rand"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/golife/internal/life"
	"github.com/san-kum/golife/internal/pattern"
	"github.com/san-kum/golife/internal/sim"
)

// frameRecorder counts published frames without retaining the grid.
type frameRecorder struct {
	mu     sync.Mutex
	frames []sim.Stats
}

func (f *frameRecorder) Render(g sim.Grid, s sim.Stats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, s)
}

func (f *frameRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func newBlockBoard() *life.Board {
	board, err := life.NewBoard(10, 10)
	Expect(err).NotTo(HaveOccurred())
	p, err := pattern.Get("block")
	Expect(err).NotTo(HaveOccurred())
	pattern.Stamp(board, p, 4, 4)
	return board
}

var _ = Describe("Runner", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(1))
	})

	It("starts in the Idle state", func() {
		r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{})
		Expect(r.State()).To(Equal(sim.Idle))
	})

	Describe("bounded runs", func() {
		It("performs exactly the configured number of advances", func() {
			recorder := &frameRecorder{}
			r := sim.NewRunner(newBlockBoard(), recorder, rng, sim.Config{MaxGenerations: 3})

			result, err := r.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Generations).To(Equal(3))
			Expect(result.Reason).To(Equal(sim.ReasonCompleted))
			Expect(result.PopulationHistory).To(HaveLen(4))
			Expect(r.State()).To(Equal(sim.Stopped))
			Expect(r.Stats().Generation).To(Equal(3))
			Expect(recorder.count()).To(Equal(4))
		})

		It("keeps a stable pattern's population constant", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{MaxGenerations: 5})

			result, err := r.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Population).To(Equal(4))
			for _, pop := range result.PopulationHistory {
				Expect(pop).To(Equal(4))
			}
		})
	})

	Describe("extinction", func() {
		It("stops immediately on an empty board", func() {
			board, _ := life.NewBoard(8, 8)
			r := sim.NewRunner(board, nil, rng, sim.Config{})

			result, err := r.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Reason).To(Equal(sim.ReasonExtinct))
			Expect(result.Generations).To(Equal(0))
			Expect(r.State()).To(Equal(sim.Stopped))
		})

		It("stops once a dying pattern runs out of cells", func() {
			board, _ := life.NewBoard(8, 8)
			board.Set(3, 3, true) // lone cell dies after one generation
			r := sim.NewRunner(board, nil, rng, sim.Config{})

			result, err := r.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Reason).To(Equal(sim.ReasonExtinct))
			Expect(result.Generations).To(Equal(1))
			Expect(result.Population).To(Equal(0))
		})
	})

	Describe("cancellation", func() {
		It("transitions to Stopped and performs no further advances", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{Delay: 5 * time.Millisecond})

			results := make(chan *sim.Result, 1)
			go func() {
				defer GinkgoRecover()
				result, err := r.Run(context.Background())
				Expect(err).NotTo(HaveOccurred())
				results <- result
			}()

			Eventually(r.State).Should(Equal(sim.Running))
			r.Cancel()

			var result *sim.Result
			Eventually(results).Should(Receive(&result))
			Expect(result.Reason).To(Equal(sim.ReasonCanceled))
			Expect(r.State()).To(Equal(sim.Stopped))

			gen := r.Stats().Generation
			Consistently(func() int { return r.Stats().Generation }, "100ms", "10ms").Should(Equal(gen))
		})

		It("interrupts the delay wait with bounded latency", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{Delay: time.Hour})

			results := make(chan *sim.Result, 1)
			go func() {
				defer GinkgoRecover()
				result, _ := r.Run(context.Background())
				results <- result
			}()

			Eventually(r.State).Should(Equal(sim.Running))
			r.Cancel()
			Eventually(results, "2s").Should(Receive())
		})

		It("honors context cancellation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{Delay: 5 * time.Millisecond})

			results := make(chan *sim.Result, 1)
			go func() {
				defer GinkgoRecover()
				result, err := r.Run(ctx)
				Expect(err).NotTo(HaveOccurred())
				results <- result
			}()

			Eventually(r.State).Should(Equal(sim.Running))
			cancel()

			var result *sim.Result
			Eventually(results).Should(Receive(&result))
			Expect(result.Reason).To(Equal(sim.ReasonCanceled))
		})

		It("moves Idle to Stopped without a loop", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{})
			r.Cancel()
			Expect(r.State()).To(Equal(sim.Stopped))
		})
	})

	Describe("pause and resume", func() {
		It("suspends advancing while Paused and continues on Resume", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{Delay: 2 * time.Millisecond})

			go func() {
				defer GinkgoRecover()
				r.Run(context.Background())
			}()

			Eventually(r.State).Should(Equal(sim.Running))
			r.Pause()
			Eventually(r.State).Should(Equal(sim.Paused))

			// let the in-flight iteration settle, then expect no progress
			time.Sleep(30 * time.Millisecond)
			gen := r.Stats().Generation
			Consistently(func() int { return r.Stats().Generation }, "100ms", "10ms").Should(Equal(gen))

			r.Resume()
			Eventually(r.State).Should(Equal(sim.Running))
			Eventually(func() int { return r.Stats().Generation }).Should(BeNumerically(">", gen))

			r.Cancel()
			Eventually(r.State).Should(Equal(sim.Stopped))
		})

		It("ignores Pause when not Running and Resume when not Paused", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{})
			r.Pause()
			Expect(r.State()).To(Equal(sim.Idle))
			r.Resume()
			Expect(r.State()).To(Equal(sim.Idle))
		})
	})

	Describe("board mutations", func() {
		It("rejects reset, randomize, and resize while the loop is active", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{Delay: 5 * time.Millisecond})

			go func() {
				defer GinkgoRecover()
				r.Run(context.Background())
			}()
			Eventually(r.State).Should(Equal(sim.Running))

			Expect(r.Reset()).To(MatchError(life.ErrBusy))
			Expect(r.Randomize(0.5)).To(MatchError(life.ErrBusy))
			Expect(r.Resize(5, 5)).To(MatchError(life.ErrBusy))

			p, _ := pattern.Get("glider")
			Expect(r.Place(p, 1, 1)).To(MatchError(life.ErrBusy))

			r.Cancel()
			Eventually(r.State).Should(Equal(sim.Stopped))
		})

		It("permits them again once Stopped", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{MaxGenerations: 1})
			_, err := r.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(r.State()).To(Equal(sim.Stopped))

			Expect(r.Reset()).To(Succeed())
			Expect(r.Stats().Population).To(BeZero())
			Expect(r.Randomize(1.0)).To(Succeed())
			Expect(r.Stats().Population).To(Equal(100))
			Expect(r.Resize(4, 3)).To(Succeed())
			Expect(r.Grid().Width()).To(Equal(4))
			Expect(r.Grid().Height()).To(Equal(3))
		})

		It("validates randomize probability", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{})
			Expect(r.Randomize(1.5)).To(MatchError(life.ErrInvalidProbability))
		})

		It("validates resize dimensions", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{})
			Expect(r.Resize(0, 10)).To(MatchError(life.ErrInvalidDimensions))
		})
	})

	Describe("manual stepping", func() {
		It("advances exactly once per Step in the Idle state", func() {
			r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{})
			r.Step()
			r.Step()
			Expect(r.Stats().Generation).To(Equal(2))
			Expect(r.State()).To(Equal(sim.Idle))
		})
	})

	It("rejects a second concurrent Run", func() {
		r := sim.NewRunner(newBlockBoard(), nil, rng, sim.Config{Delay: 5 * time.Millisecond})

		go func() {
			defer GinkgoRecover()
			r.Run(context.Background())
		}()
		Eventually(r.State).Should(Equal(sim.Running))

		_, err := r.Run(context.Background())
		Expect(err).To(MatchError(life.ErrBusy))

		r.Cancel()
		Eventually(r.State).Should(Equal(sim.Stopped))
	})
})
