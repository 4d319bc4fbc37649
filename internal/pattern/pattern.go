// Package pattern holds the library of classic still lifes, oscillators
// and spaceships, and stamps them onto boards.
package pattern

import (
	"fmt"
	"sort"

	"github.com/san-kum/golife/internal/life"
)

// Offset is a cell position relative to a pattern's origin.
type Offset struct {
	DX, DY int
}

// Pattern is a named, immutable list of relative cell offsets. Patterns
// are read-only and safe to share.
type Pattern struct {
	Name  string
	Cells []Offset
}

var library = map[string]Pattern{
	"glider": {Name: "glider", Cells: []Offset{
		{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2},
	}},
	"blinker": {Name: "blinker", Cells: []Offset{
		{0, 1}, {1, 1}, {2, 1},
	}},
	"block": {Name: "block", Cells: []Offset{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
	}},
	"beehive": {Name: "beehive", Cells: []Offset{
		{1, 0}, {2, 0}, {0, 1}, {3, 1}, {1, 2}, {2, 2},
	}},
	"loaf": {Name: "loaf", Cells: []Offset{
		{1, 0}, {2, 0}, {0, 1}, {3, 1}, {1, 2}, {3, 2}, {2, 3},
	}},
	"boat": {Name: "boat", Cells: []Offset{
		{0, 0}, {1, 0}, {0, 1}, {2, 1}, {1, 2},
	}},
	"toad": {Name: "toad", Cells: []Offset{
		{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1},
	}},
	"beacon": {Name: "beacon", Cells: []Offset{
		{0, 0}, {1, 0}, {0, 1}, {3, 2}, {2, 3}, {3, 3},
	}},
	"lwss": {Name: "lwss", Cells: []Offset{
		{1, 0}, {4, 0}, {0, 1}, {0, 2}, {4, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 3},
	}},
	"pulsar": {Name: "pulsar", Cells: []Offset{
		{2, 0}, {3, 0}, {4, 0}, {8, 0}, {9, 0}, {10, 0},
		{0, 2}, {5, 2}, {7, 2}, {12, 2},
		{0, 5}, {5, 5}, {7, 5}, {12, 5},
		{2, 5}, {2, 7}, {3, 5}, {3, 7}, {4, 5}, {4, 7},
		{8, 5}, {8, 7}, {9, 5}, {9, 7}, {10, 5}, {10, 7},
		{0, 7}, {5, 7}, {7, 7}, {12, 7},
		{0, 10}, {5, 10}, {7, 10}, {12, 10},
		{2, 12}, {3, 12}, {4, 12}, {8, 12}, {9, 12}, {10, 12},
	}},
	"gun": {Name: "gun", Cells: []Offset{
		{0, 4}, {0, 5}, {1, 4}, {1, 5},
		{10, 4}, {10, 5}, {10, 6}, {11, 3}, {11, 7}, {12, 2}, {12, 8},
		{13, 2}, {13, 8}, {14, 5}, {15, 3}, {15, 7}, {16, 4}, {16, 5}, {16, 6},
		{17, 5},
		{20, 2}, {20, 3}, {20, 4}, {21, 2}, {21, 3}, {21, 4}, {22, 1}, {22, 5},
		{24, 0}, {24, 1}, {24, 5}, {24, 6},
		{34, 2}, {34, 3}, {35, 2}, {35, 3},
	}},
}

// Get returns the named pattern.
func Get(name string) (Pattern, error) {
	p, ok := library[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q (available: %v)", life.ErrUnknownPattern, name, Names())
	}
	return p, nil
}

// Names returns all pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stamp sets every cell of p alive on b, translated by (offsetX, offsetY).
// Cells landing outside the board are dropped by the board's permissive
// write semantics.
func Stamp(b *life.Board, p Pattern, offsetX, offsetY int) {
	for _, c := range p.Cells {
		b.Set(offsetX+c.DX, offsetY+c.DY, true)
	}
}
