// Package export renders board snapshots to standalone SVG documents.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/golife/internal/sim"
)

const (
	backgroundFill = "#0a0a0a"
	cellFill       = "#00ff00"
)

// BoardToSVG renders the grid as an SVG document, one rounded square
// per living cell on a dark background. cellSize is the edge length of
// one cell in SVG units; values below 1 are clamped to 1.
func BoardToSVG(g sim.Grid, cellSize float64) string {
	if cellSize < 1 {
		cellSize = 1
	}

	width := float64(g.Width()) * cellSize
	height := float64(g.Height()) * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, backgroundFill, cellFill))

	// inset each cell slightly so neighbors read as separate squares
	inset := cellSize * 0.1
	side := cellSize - 2*inset
	radius := cellSize * 0.15

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.Get(x, y) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f"/>
`, float64(x)*cellSize+inset, float64(y)*cellSize+inset, side, side, radius))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG renders the grid and writes the document to path.
func WriteSVG(path string, g sim.Grid, cellSize float64) error {
	return os.WriteFile(path, []byte(BoardToSVG(g, cellSize)), 0644)
}
