// Package tui runs a headless scene in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/neonloop/hotloop"
	"github.com/neonloop/hotloop/internal/stats"
)

const (
	gridW = 72
	gridH = 24
	// frameRate is the terminal refresh rate; the scene runs TPS/frameRate
	// ticks per frame.
	frameRate   = 30
	cursorStep  = 2
	swipeFrames = 4
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	mapStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(34)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	statusOn    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusOff   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

type tickMsg time.Time

// Model is the bubbletea model for the watch view.
type Model struct {
	sim      *hotloop.Headless
	rec      *stats.Recorder
	perFrame int
	running  bool
	holding  bool
	cursorX  int
	cursorY  int
	grid     [][]rune
	lastCmd  string
}

// New wraps a headless scene. The scene viewport is used as the screen the
// grid maps onto.
func New(sim *hotloop.Headless) Model {
	grid := make([][]rune, gridH)
	for i := range grid {
		grid[i] = make([]rune, gridW)
	}
	perFrame := sim.Scene.Config().TPS / frameRate
	if perFrame < 1 {
		perFrame = 1
	}
	return Model{
		sim:      sim,
		rec:      stats.NewRecorder(stats.DefaultCapacity),
		perFrame: perFrame,
		running:  true,
		cursorX:  gridW / 2,
		cursorY:  gridH / 2,
		grid:     grid,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(sim *hotloop.Headless) error {
	_, err := tea.NewProgram(New(sim), tea.WithAltScreen()).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if m.running {
			m.sim.StepN(m.perFrame, m.rec.Record)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.sim.Scene
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "up", "k":
		m.cursorY = max(m.cursorY-1, 0)
	case "down", "j":
		m.cursorY = min(m.cursorY+1, gridH-1)
	case "left", "h":
		m.cursorX = max(m.cursorX-cursorStep, 0)
	case "right", "l":
		m.cursorX = min(m.cursorX+cursorStep, gridW-1)
	case "t", "enter":
		x, y := m.cursorScreen()
		s.InjectTap(x, y)
		m.lastCmd = "tap"
	case "b":
		x, y := m.cursorScreen()
		w, _ := m.viewport()
		s.InjectSwipe(x, y, x+w/4, y, swipeFrames)
		m.lastCmd = "swipe"
	case "p":
		x, y := m.cursorScreen()
		if m.holding {
			s.InjectRelease(x, y)
			m.lastCmd = "release"
		} else {
			s.InjectPress(x, y)
			m.lastCmd = "press"
		}
		m.holding = !m.holding
	case "s":
		// Steps one tick while paused.
		if !m.running {
			m.sim.Step()
			m.rec.Record(s)
		}
	}
	return m, nil
}

func (m Model) viewport() (w, h float64) {
	v := m.sim.Scene.Camera().Viewport
	return v.Width, v.Height
}

// cursorScreen maps the grid cursor to scene screen coordinates.
func (m Model) cursorScreen() (x, y float64) {
	w, h := m.viewport()
	return (float64(m.cursorX) + 0.5) * w / gridW, (float64(m.cursorY) + 0.5) * h / gridH
}

// cell maps a world point to a grid cell.
func (m Model) cell(wx, wy float64) (int, int) {
	w, h := m.viewport()
	sx, sy := m.sim.Scene.Camera().WorldToScreen(wx, wy)
	return int(sx * gridW / w), int(sy * gridH / h)
}

func (m Model) set(x, y int, c rune) {
	if x >= 0 && x < gridW && y >= 0 && y < gridH {
		m.grid[y][x] = c
	}
}

// line rasterizes a segment with Bresenham's algorithm.
func (m Model) line(x1, y1, x2, y2 int, c rune) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		m.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (m Model) draw() string {
	for y := range m.grid {
		for x := range m.grid[y] {
			m.grid[y][x] = ' '
		}
	}
	s := m.sim.Scene
	for _, r := range s.Network().Roads() {
		ex, ey := r.PointAt(r.Reveal)
		x1, y1 := m.cell(r.X1, r.Y1)
		x2, y2 := m.cell(ex, ey)
		m.line(x1, y1, x2, y2, '·')
	}
	for _, p := range s.Particles().Particles() {
		x, y := m.cell(p.X, p.Y)
		m.set(x, y, '*')
	}
	for _, c := range s.Traffic().Cars() {
		x, y := m.cell(s.Traffic().PositionOf(c))
		m.set(x, y, 'o')
	}
	m.set(m.cursorX, m.cursorY, '+')

	var b strings.Builder
	for i, row := range m.grid {
		b.WriteString(string(row))
		if i < len(m.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// View renders the map, counters and a car-count chart.
func (m Model) View() string {
	s := m.sim.Scene
	status := statusOn.Render("RUNNING")
	if !m.running {
		status = statusOff.Render("PAUSED")
	}

	var side strings.Builder
	side.WriteString(status + "\n\n")
	row := func(label, value string) {
		side.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", s.Ticks()))
	row("Roads", fmt.Sprintf("%d", s.Network().Len()))
	row("Cars", fmt.Sprintf("%d", s.Traffic().Len()))
	row("Particles", fmt.Sprintf("%d", s.Particles().AliveCount()))
	row("Zoom", fmt.Sprintf("%.2f", s.Camera().Zoom))
	row("Gesture", s.Input().State().String())
	if m.lastCmd != "" {
		row("Last", m.lastCmd)
	}
	if chart := stats.Plot(m.rec.Series(stats.Cars), 24, 4, "cars"); chart != "" {
		side.WriteString(graphStyle.Render(chart) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		mapStyle.Render(m.draw()),
		statsStyle.Render(side.String()))
	help := helpStyle.Render("arrows/hjkl move  t tap  b swipe  p hold/release  space pause  s step  q quit")
	return headerStyle.Render("HOTLOOP") + "\n" + body + "\n" + help
}
