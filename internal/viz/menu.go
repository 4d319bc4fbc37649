package viz

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/golife/internal/life"
	"github.com/san-kum/golife/internal/pattern"
)

const (
	stateMenu = iota
	statePattern
	stateSettings
	stateSim
)

var menuItems = []string{
	"start simulation",
	"step once",
	"clear grid",
	"randomize grid",
	"load pattern",
	"settings",
	"quit",
}

var settingNames = []string{"delay", "width", "height", "probability", "theme"}

// app is the interactive menu: a thin state machine over the board
// operations, with the live view embedded for the simulation itself.
type app struct {
	state  int
	cursor int

	board       *life.Board
	rng         *rand.Rand
	delay       time.Duration
	probability float64
	status      string

	// pattern placement
	patCursor int
	patNames  []string
	placing   bool
	posStage  int
	posBuf    string
	posX      int

	// settings editing
	setCursor int
	editing   bool
	editBuf   string

	liveModel Model
}

// NewInteractiveApp builds the menu around a fresh default board.
func NewInteractiveApp(width, height int, delay time.Duration, probability float64, seed int64) *app {
	if width <= 0 {
		width = 50
	}
	if height <= 0 {
		height = 25
	}
	board, _ := life.NewBoard(width, height)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if probability <= 0 || probability > 1 {
		probability = 0.3
	}
	return &app{
		board:       board,
		rng:         rand.New(rand.NewSource(seed)),
		delay:       delay,
		probability: probability,
		patNames:    pattern.Names(),
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	default:
		if a.state == stateSim {
			newLive, cmd := a.liveModel.Update(msg)
			a.liveModel = newLive.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case statePattern:
		return a.patternKey(msg)
	case stateSettings:
		return a.settingsKey(msg)
	case stateSim:
		if msg.String() == "esc" {
			a.board = a.liveModel.Board()
			a.delay = a.liveModel.delay
			a.state = stateMenu
			return a, nil
		}
		newLive, cmd := a.liveModel.Update(msg)
		a.liveModel = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(menuItems)-1 {
			a.cursor++
		}
	case "enter", " ":
		switch menuItems[a.cursor] {
		case "start simulation":
			a.liveModel = NewModel(a.board, a.rng, a.delay, a.probability)
			a.state = stateSim
			return a, a.liveModel.Init()
		case "step once":
			a.board = life.Advance(a.board)
		case "clear grid":
			a.board.Clear()
		case "randomize grid":
			a.board.Randomize(a.rng, a.probability)
		case "load pattern":
			a.state = statePattern
			a.patCursor, a.placing, a.posStage, a.posBuf = 0, false, 0, ""
		case "settings":
			a.state = stateSettings
			a.setCursor, a.editing, a.editBuf = 0, false, ""
		case "quit":
			return a, tea.Quit
		}
	}
	return a, nil
}

func (a app) patternKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.placing {
		switch msg.String() {
		case "enter":
			n, err := strconv.Atoi(a.posBuf)
			if err != nil {
				a.status = "invalid position"
				a.placing, a.posBuf, a.posStage = false, "", 0
				return a, nil
			}
			if a.posStage == 0 {
				a.posX, a.posStage, a.posBuf = n, 1, ""
				return a, nil
			}
			p, _ := pattern.Get(a.patNames[a.patCursor])
			pattern.Stamp(a.board, p, a.posX, n)
			a.status = fmt.Sprintf("placed %s at (%d, %d)", p.Name, a.posX, n)
			a.state = stateMenu
		case "esc":
			a.placing, a.posBuf, a.posStage = false, "", 0
		case "backspace":
			if len(a.posBuf) > 0 {
				a.posBuf = a.posBuf[:len(a.posBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '-' {
					a.posBuf += string(c)
				}
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.patCursor > 0 {
			a.patCursor--
		}
	case "down", "j":
		if a.patCursor < len(a.patNames)-1 {
			a.patCursor++
		}
	case "enter", " ":
		a.placing, a.posStage, a.posBuf = true, 0, ""
	}
	return a, nil
}

func (a app) settingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			a.applySetting(a.editBuf)
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.setCursor > 0 {
			a.setCursor--
		}
	case "down", "j":
		if a.setCursor < len(settingNames)-1 {
			a.setCursor++
		}
	case "enter", " ":
		if settingNames[a.setCursor] == "theme" {
			a.cycleTheme()
		} else {
			a.editing, a.editBuf = true, ""
		}
	case "left", "h", "right", "l":
		if settingNames[a.setCursor] == "theme" {
			a.cycleTheme()
		}
	}
	return a, nil
}

func (a *app) cycleTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// applySetting parses and applies an edited value, falling back with a
// status message on malformed input.
func (a *app) applySetting(raw string) {
	switch settingNames[a.setCursor] {
	case "delay":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			a.status = "delay must be a non-negative number"
			return
		}
		a.delay = time.Duration(v * float64(time.Second))
	case "width", "height":
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			a.status = "dimensions must be positive integers"
			return
		}
		w, h := a.board.Width(), a.board.Height()
		if settingNames[a.setCursor] == "width" {
			w = v
		} else {
			h = v
		}
		board, err := life.NewBoard(w, h)
		if err != nil {
			a.status = err.Error()
			return
		}
		a.board = board
	case "probability":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			a.status = "probability must be in [0, 1]"
			return
		}
		a.probability = v
	}
}

func (a app) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case statePattern:
		return a.viewPattern()
	case stateSettings:
		return a.viewSettings()
	case stateSim:
		return a.liveModel.View()
	}
	return ""
}

func (a app) viewMenu() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	sel := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	pointer := lipgloss.NewStyle().Foreground(CurrentTheme.Alive).Bold(true)

	b.WriteString("\n  " + h.Render("GOLIFE") + "\n  " + sub.Render("terminal cellular automaton") + "\n\n")
	b.WriteString(a.renderMiniGrid() + "\n")
	b.WriteString(sub.Render(fmt.Sprintf("  generation %d · living %d · %dx%d",
		a.board.Generation(), a.board.Population(), a.board.Width(), a.board.Height())) + "\n\n")
	for i, item := range menuItems {
		if i == a.cursor {
			b.WriteString("  " + pointer.Render("▸ ") + sel.Render(item) + "\n")
		} else {
			b.WriteString("    " + sub.Render(item) + "\n")
		}
	}
	if a.status != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(CurrentTheme.Warn).Render(a.status) + "\n")
	}
	b.WriteString("\n  " + sub.Render("j/k navigate · enter select · q quit") + "\n")
	return b.String()
}

func (a app) viewPattern() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	sel := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	pointer := lipgloss.NewStyle().Foreground(CurrentTheme.Alive).Bold(true)

	b.WriteString("\n  " + h.Render("PATTERNS") + "\n\n")
	for i, name := range a.patNames {
		p, _ := pattern.Get(name)
		line := fmt.Sprintf("%-10s %d cells", name, len(p.Cells))
		if i == a.patCursor {
			b.WriteString("  " + pointer.Render("▸ ") + sel.Render(line) + "\n")
		} else {
			b.WriteString("    " + sub.Render(line) + "\n")
		}
	}
	if a.placing {
		prompt := "x position"
		if a.posStage == 1 {
			prompt = "y position"
		}
		b.WriteString("\n  " + sel.Render(fmt.Sprintf("%s: %s_", prompt, a.posBuf)) + "\n")
	}
	b.WriteString("\n  " + sub.Render("enter place · esc back") + "\n")
	return b.String()
}

func (a app) viewSettings() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	sel := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	pointer := lipgloss.NewStyle().Foreground(CurrentTheme.Alive).Bold(true)

	values := map[string]string{
		"delay":       fmt.Sprintf("%.2fs", a.delay.Seconds()),
		"width":       strconv.Itoa(a.board.Width()),
		"height":      strconv.Itoa(a.board.Height()),
		"probability": fmt.Sprintf("%.2f", a.probability),
		"theme":       CurrentTheme.Name,
	}

	b.WriteString("\n  " + h.Render("SETTINGS") + "\n\n")
	for i, name := range settingNames {
		val := values[name]
		if a.editing && i == a.setCursor {
			val = a.editBuf + "_"
		}
		line := fmt.Sprintf("%-12s %s", name, val)
		if i == a.setCursor {
			b.WriteString("  " + pointer.Render("▸ ") + sel.Render(line) + "\n")
		} else {
			b.WriteString("    " + sub.Render(line) + "\n")
		}
	}
	if a.status != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(CurrentTheme.Warn).Render(a.status) + "\n")
	}
	b.WriteString("\n  " + sub.Render("enter edit · esc back") + "\n")
	return b.String()
}

// renderMiniGrid shows the current board state above the menu.
func (a app) renderMiniGrid() string {
	alive := lipgloss.NewStyle().Foreground(CurrentTheme.Alive)
	muted := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	var b strings.Builder
	border := "  " + muted.Render("+"+strings.Repeat("-", a.board.Width())+"+")
	b.WriteString(border + "\n")
	wall := muted.Render("|")
	cell := alive.Render("█")
	for y := 0; y < a.board.Height(); y++ {
		b.WriteString("  " + wall)
		for x := 0; x < a.board.Width(); x++ {
			if a.board.Get(x, y) {
				b.WriteString(cell)
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(wall + "\n")
	}
	b.WriteString(border)
	return b.String()
}

// RunInteractive starts the menu app in the alternate screen.
func RunInteractive(width, height int, delay time.Duration, probability float64, seed int64) error {
	_, err := tea.NewProgram(NewInteractiveApp(width, height, delay, probability, seed), tea.WithAltScreen()).Run()
	return err
}
