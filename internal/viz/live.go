package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/golife/internal/life"
)

const historyCapacity = 600

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live-view Bubble Tea model. It owns its board and steps
// it on a timer; key commands map to the controller operations.
type Model struct {
	board       *life.Board
	rng         *rand.Rand
	delay       time.Duration
	probability float64
	running     bool
	popHistory  []float64
	note        string
	showHelp    bool
}

// NewModel initializes the live view around board. A zero delay runs at
// 60 frames per second.
func NewModel(board *life.Board, rng *rand.Rand, delay time.Duration, probability float64) Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if probability <= 0 || probability > 1 {
		probability = 0.3
	}
	return Model{
		board:       board,
		rng:         rng,
		delay:       delay,
		probability: probability,
		running:     true,
		popHistory:  make([]float64, 0, historyCapacity),
	}
}

// Board returns the current board, e.g. for handing back to the menu.
func (m Model) Board() *life.Board { return m.board }

func (m Model) tickInterval() time.Duration {
	if m.delay <= 0 {
		return time.Second / 60
	}
	return m.delay
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.tickInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.note = ""
		case "s":
			m.step()
		case "r":
			m.board.Randomize(m.rng, m.probability)
			m.popHistory = m.popHistory[:0]
			m.note = ""
		case "c":
			m.board.Clear()
			m.popHistory = m.popHistory[:0]
			m.running = false
			m.note = ""
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "+", "=":
			m.delay -= 25 * time.Millisecond
			if m.delay < 0 {
				m.delay = 0
			}
		case "-", "_":
			m.delay += 25 * time.Millisecond
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.board.IsEmpty() {
				m.running = false
				m.note = "no living cells remaining"
			} else {
				m.step()
			}
		}
		return m, tea.Tick(m.tickInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances one generation and records the population.
func (m *Model) step() {
	m.board = life.Advance(m.board)
	m.popHistory = append(m.popHistory, float64(m.board.Population()))
	if len(m.popHistory) > historyCapacity {
		m.popHistory = m.popHistory[1:]
	}
}

func (m Model) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).MarginBottom(1)
	aliveStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Alive)
	mutedStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)

	var grid strings.Builder
	border := "+" + strings.Repeat("-", m.board.Width()) + "+"
	grid.WriteString(mutedStyle.Render(border) + "\n")
	wall := mutedStyle.Render("|")
	aliveCell := aliveStyle.Render("█")
	for y := 0; y < m.board.Height(); y++ {
		grid.WriteString(wall)
		for x := 0; x < m.board.Width(); x++ {
			if m.board.Get(x, y) {
				grid.WriteString(aliveCell)
			} else {
				grid.WriteString(" ")
			}
		}
		grid.WriteString(wall + "\n")
	}
	grid.WriteString(mutedStyle.Render(border))
	canvasView := canvasStyle.Render(grid.String())

	status := "RUNNING"
	statusStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Alive).Bold(true)
	if !m.running {
		status = "PAUSED"
		statusStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Warn).Bold(true)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("GAME OF LIFE") + "\n")
	s.WriteString(statusStyle.Render(status) + "\n")
	if m.note != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Warn).Render(m.note) + "\n")
	}
	s.WriteString("\n")
	if len(m.popHistory) > 1 {
		chart := asciigraph.Plot(m.popHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d", m.board.Generation())) + "\n")
	s.WriteString(labelStyle.Render("Living") + valueStyle.Render(fmt.Sprintf("%d", m.board.Population())) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d", m.board.Width(), m.board.Height())) + "\n")
	s.WriteString(labelStyle.Render("Delay") + valueStyle.Render(fmt.Sprintf("%dms", m.tickInterval().Milliseconds())) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause S:Step R:Random\nC:Clear T:Theme +/-:Speed\nQ:Quit ?:Help"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  S        - Step one generation      ║
║  R        - Randomize grid           ║
║  C        - Clear grid               ║
║  T        - Cycle themes             ║
║  +/-      - Faster/slower            ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
