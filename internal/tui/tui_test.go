package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neonloop/hotloop"
)

func newModel() Model {
	return New(hotloop.NewHeadless(hotloop.DefaultConfig()))
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestTickStepsScene(t *testing.T) {
	m := newModel()
	m = send(m, tickMsg{})
	if got := m.sim.Scene.Ticks(); got != uint64(m.perFrame) {
		t.Errorf("ticks = %d, want %d", got, m.perFrame)
	}
	if m.rec.Total() != m.perFrame {
		t.Errorf("recorded %d samples, want %d", m.rec.Total(), m.perFrame)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	m := newModel()
	m = send(m, key(" "))
	m = send(m, tickMsg{})
	if m.sim.Scene.Ticks() != 0 {
		t.Errorf("paused model advanced to tick %d", m.sim.Scene.Ticks())
	}
	m = send(m, key("s"))
	if m.sim.Scene.Ticks() != 1 {
		t.Errorf("single step: ticks = %d, want 1", m.sim.Scene.Ticks())
	}
}

func TestTapAddsRoad(t *testing.T) {
	m := newModel()
	before := m.sim.Scene.Network().Len()
	m = send(m, key("t"))
	if !m.sim.Scene.InjectPending() {
		t.Fatal("tap should queue injected events")
	}
	m.sim.StepN(2, nil)
	if got := m.sim.Scene.Network().Len(); got != before+1 {
		t.Errorf("roads = %d, want %d", got, before+1)
	}
}

func TestHoldToggle(t *testing.T) {
	m := newModel()
	m = send(m, key("p"))
	if !m.holding {
		t.Fatal("expected holding")
	}
	m.sim.StepN(40, nil)
	if st := m.sim.Scene.Input().State(); st != hotloop.GestureHolding {
		t.Fatalf("gesture = %v, want Holding", st)
	}
	m = send(m, key("p"))
	m.sim.Step()
	if st := m.sim.Scene.Input().State(); st != hotloop.GestureIdle {
		t.Errorf("gesture = %v, want Idle", st)
	}
}

func TestCursorClamped(t *testing.T) {
	m := newModel()
	for i := 0; i < gridH+5; i++ {
		m = send(m, key("up"))
	}
	if m.cursorY != 0 {
		t.Errorf("cursorY = %d, want 0", m.cursorY)
	}
}

func TestVimKeysMoveCursor(t *testing.T) {
	m := newModel()
	x, y := m.cursorX, m.cursorY
	m = send(m, key("l"))
	if m.cursorX != x+cursorStep {
		t.Errorf("l: cursorX = %d, want %d", m.cursorX, x+cursorStep)
	}
	m = send(m, key("h"))
	if m.cursorX != x {
		t.Errorf("h: cursorX = %d, want %d", m.cursorX, x)
	}
	if m.holding {
		t.Error("h should not start a hold")
	}
	m = send(m, key("j"))
	m = send(m, key("k"))
	if m.cursorY != y {
		t.Errorf("j then k: cursorY = %d, want %d", m.cursorY, y)
	}
}

func TestView(t *testing.T) {
	m := newModel()
	m.sim.StepN(5, m.rec.Record)
	out := m.View()
	for _, want := range []string{"HOTLOOP", "RUNNING", "Roads", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	_, cmd := newModel().Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
