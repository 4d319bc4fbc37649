// Package render implements the terminal render capability consumed by
// the simulation controller: a plain console renderer and a colored one.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/golife/internal/sim"
)

const (
	aliveChar = "█"
	deadChar  = " "
)

// clearScreen is the ANSI erase-display + home sequence written before
// each frame in interactive terminals.
const clearScreen = "\033[2J\033[H"

// Console renders the grid as plain text with a border and a stats
// header, one frame per Render call.
type Console struct {
	out   io.Writer
	clear bool
}

// NewConsole returns a console renderer writing to out. When clear is
// true each frame starts with a screen-erase sequence.
func NewConsole(out io.Writer, clear bool) *Console {
	return &Console{out: out, clear: clear}
}

func (c *Console) Render(g sim.Grid, s sim.Stats) {
	var b strings.Builder
	if c.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "Generation: %d\n", s.Generation)
	fmt.Fprintf(&b, "Living cells: %d\n", s.Population)
	fmt.Fprintf(&b, "Grid size: %dx%d\n\n", g.Width(), g.Height())
	writeGrid(&b, g, aliveChar, deadChar)
	io.WriteString(c.out, b.String())
}

// Color renders the same layout with lipgloss styling: colored stats
// lines and phosphor-green live cells.
type Color struct {
	out   io.Writer
	clear bool

	genStyle   lipgloss.Style
	popStyle   lipgloss.Style
	sizeStyle  lipgloss.Style
	aliveStyle lipgloss.Style
}

// NewColor returns a colored console renderer writing to out.
func NewColor(out io.Writer, clear bool) *Color {
	return &Color{
		out:        out,
		clear:      clear,
		genStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		popStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		sizeStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		aliveStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	}
}

func (c *Color) Render(g sim.Grid, s sim.Stats) {
	var b strings.Builder
	if c.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(c.genStyle.Render(fmt.Sprintf("Generation: %d", s.Generation)) + "\n")
	b.WriteString(c.popStyle.Render(fmt.Sprintf("Living cells: %d", s.Population)) + "\n")
	b.WriteString(c.sizeStyle.Render(fmt.Sprintf("Grid size: %dx%d", g.Width(), g.Height())) + "\n\n")
	alive := c.aliveStyle.Render(aliveChar)
	writeGrid(&b, g, alive, deadChar)
	io.WriteString(c.out, b.String())
}

// writeGrid emits the bordered cell matrix. Both renderers share the
// layout and differ only in the cell glyphs.
func writeGrid(b *strings.Builder, g sim.Grid, alive, dead string) {
	border := "+" + strings.Repeat("-", g.Width()) + "+"
	b.WriteString(border + "\n")
	for y := 0; y < g.Height(); y++ {
		b.WriteString("|")
		for x := 0; x < g.Width(); x++ {
			if g.Get(x, y) {
				b.WriteString(alive)
			} else {
				b.WriteString(dead)
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(border + "\n")
}
