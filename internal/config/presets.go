package config

import "sort"

// Presets are named starting setups selectable with --preset.
var Presets = map[string]*Config{
	"glider": {
		Width: 50, Height: 25, Delay: 0.1, Display: "console",
		Pattern: "glider",
	},
	"blinker": {
		Width: 30, Height: 15, Delay: 0.3, Display: "console",
		Pattern: "blinker",
	},
	"pulsar": {
		Width: 40, Height: 30, Delay: 0.2, Display: "color",
		Pattern: "pulsar",
	},
	"gun": {
		Width: 80, Height: 40, Delay: 0.05, Display: "color",
		Pattern: "gun",
	},
	"soup": {
		Width: 80, Height: 30, Delay: 0.05, Display: "color",
		Random: true, Probability: 0.3,
	},
	"sparse-soup": {
		Width: 80, Height: 30, Delay: 0.05, Display: "console",
		Random: true, Probability: 0.1,
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
// Callers get a copy; presets themselves stay immutable.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Probability == 0 && !cfg.Random {
		cfg.Probability = DefaultProbability
	}
	if cfg.Display == "" {
		cfg.Display = DefaultDisplay
	}
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
