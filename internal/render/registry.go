package render

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/golife/internal/sim"
)

// registry maps a display-mode identifier to a renderer constructor.
var registry = map[string]func() sim.Renderer{
	"console": func() sim.Renderer { return NewConsole(os.Stdout, true) },
	"color":   func() sim.Renderer { return NewColor(os.Stdout, true) },
}

// New constructs the renderer registered under mode.
func New(mode string) (sim.Renderer, error) {
	ctor, ok := registry[mode]
	if !ok {
		return nil, fmt.Errorf("unknown display mode %q (available: %v)", mode, Modes())
	}
	return ctor(), nil
}

// Modes returns the registered display-mode names in sorted order.
func Modes() []string {
	modes := make([]string, 0, len(registry))
	for mode := range registry {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}
