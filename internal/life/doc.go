// Package life implements the bounded-grid cellular automaton core.
//
// The package defines the two building blocks everything else composes:
//
//   - [Board]: a finite 2D cell matrix with a generation counter and
//     bounded-safe accessors (out-of-range reads are dead, writes no-ops)
//   - [Advance]: the pure transition function computing generation t+1
//     from a snapshot of generation t under Conway's rules
//
// # Example
//
//	b, _ := life.NewBoard(50, 25)
//	b.Set(1, 1, true)
//	next := life.Advance(b)
//
// # Thread Safety
//
// Board instances are NOT thread-safe. A board is owned by exactly one
// controller; concurrent mutation is coordinated there.
package life
