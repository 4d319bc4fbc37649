package life

// CountNeighbors sums liveness over the 8 Moore-neighborhood cells of
// (x, y). Cells beyond the board edge count as dead; there is no
// wraparound.
func CountNeighbors(b *Board, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.Get(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}

// nextState applies Conway's rules: a live cell survives with 2 or 3
// neighbors, a dead cell is born with exactly 3.
func nextState(alive bool, neighbors int) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Advance computes generation t+1 from a snapshot of generation t and
// returns it as a fresh board. The input board is never mutated, so the
// new grid is committed atomically: callers swap the returned board in
// whole. The generation counter is incremented by exactly 1.
func Advance(b *Board) *Board {
	next := &Board{
		width:      b.width,
		height:     b.height,
		cells:      make([]bool, len(b.cells)),
		generation: b.generation + 1,
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			next.cells[y*b.width+x] = nextState(b.cells[y*b.width+x], CountNeighbors(b, x, y))
		}
	}
	return next
}
