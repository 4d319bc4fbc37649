package life

import (
	"fmt"
	"math/rand"
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Board is a finite 2D grid of cells with a generation counter.
// Reads outside [0,width)x[0,height) return dead; writes there are no-ops.
type Board struct {
	width      int
	height     int
	cells      []bool
	generation int
}

// NewBoard returns an all-dead board at generation 0.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}, nil
}

func (b *Board) Width() int      { return b.width }
func (b *Board) Height() int     { return b.height }
func (b *Board) Generation() int { return b.generation }

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get reports whether the cell at (x, y) is alive. Out-of-range
// coordinates are dead.
func (b *Board) Get(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.cells[y*b.width+x]
}

// Set assigns liveness to the cell at (x, y). Out-of-range coordinates
// are silently ignored.
func (b *Board) Set(x, y int, alive bool) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = alive
}

// Clear kills every cell and resets the generation counter.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = false
	}
	b.generation = 0
}

// Randomize performs an independent Bernoulli trial per cell and resets
// the generation counter. The random source is injected so runs are
// reproducible under test.
func (b *Board) Randomize(rng *rand.Rand, probability float64) error {
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidProbability, probability)
	}
	for i := range b.cells {
		b.cells[i] = rng.Float64() < probability
	}
	b.generation = 0
	return nil
}

// LivingCells returns the coordinates of every live cell.
func (b *Board) LivingCells() []Cell {
	living := make([]Cell, 0)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[y*b.width+x] {
				living = append(living, Cell{X: x, Y: y})
			}
		}
	}
	return living
}

// Population returns the number of live cells.
func (b *Board) Population() int {
	n := 0
	for _, alive := range b.cells {
		if alive {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no cell is alive.
func (b *Board) IsEmpty() bool {
	for _, alive := range b.cells {
		if alive {
			return false
		}
	}
	return true
}
