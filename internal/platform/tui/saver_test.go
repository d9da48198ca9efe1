package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-saver/internal/config"
	"github.com/vovakirdan/tetris-saver/internal/palette"
	"github.com/vovakirdan/tetris-saver/internal/storage"
)

func newTestSaver(t *testing.T, w, h int) SaverModel {
	t.Helper()
	return NewSaverModel(SaverOptions{
		Config:  config.DefaultSaverConfig(),
		Palette: palette.Default(),
		Seed:    7,
		Width:   w,
		Height:  h,
	})
}

func update(t *testing.T, m SaverModel, msg tea.Msg) (SaverModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SaverModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSaverBoardFromScreenSize(t *testing.T) {
	m := newTestSaver(t, 80, 24)
	sim := m.Sim()
	if sim == nil {
		t.Fatal("expected a board")
	}
	// Default tile is 2x1
	if sim.Width() != 40 || sim.Height() != 24 {
		t.Errorf("board = %dx%d, want 40x24", sim.Width(), sim.Height())
	}
}

func TestSaverQuitsOnKey(t *testing.T) {
	m := newTestSaver(t, 80, 24)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if !m.IsQuitting() || !isQuit(cmd) {
		t.Fatal("expected quit on key press")
	}
	if got := m.Summary().ExitReason; got != ExitKey {
		t.Errorf("ExitReason = %q, want %q", got, ExitKey)
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestSaverMouseThreshold(t *testing.T) {
	m := newTestSaver(t, 80, 24)

	// First event only anchors the pointer
	m, cmd := update(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion})
	if m.IsQuitting() || cmd != nil {
		t.Fatal("first mouse event must not quit")
	}

	// Within the default threshold of one cell
	m, _ = update(t, m, tea.MouseMsg{X: 11, Y: 9, Action: tea.MouseActionMotion})
	if m.IsQuitting() {
		t.Fatal("movement within threshold must not quit")
	}

	m, cmd = update(t, m, tea.MouseMsg{X: 12, Y: 10, Action: tea.MouseActionMotion})
	if !m.IsQuitting() || !isQuit(cmd) {
		t.Fatal("expected quit on movement past threshold")
	}
	if got := m.Summary().ExitReason; got != ExitMouse {
		t.Errorf("ExitReason = %q, want %q", got, ExitMouse)
	}
}

func TestSaverTickAdvances(t *testing.T) {
	m := newTestSaver(t, 80, 24)
	before := m.Sim().Active().Y

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick must schedule the next tick")
	}
	if got := m.Stats().Ticks; got != 1 {
		t.Errorf("Ticks = %d, want 1", got)
	}
	if m.Sim().Active().Y != before+1 {
		t.Errorf("piece Y = %d, want %d", m.Sim().Active().Y, before+1)
	}
}

func TestSaverResizeRebuildsAndKeepsStats(t *testing.T) {
	m := newTestSaver(t, 80, 24)
	for range 5 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if w, h := m.Sim().Width(), m.Sim().Height(); w != 20 || h != 10 {
		t.Errorf("board = %dx%d, want 20x10", w, h)
	}
	if got := m.Stats().Ticks; got != 5 {
		t.Errorf("Ticks after resize = %d, want 5", got)
	}
}

func TestSaverTooSmall(t *testing.T) {
	m := newTestSaver(t, 4, 2)
	if m.Sim() != nil {
		t.Fatal("expected no board for a tiny screen")
	}
	// Ticks still keep the loop alive
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected next tick")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	if m.Sim() == nil {
		t.Fatal("expected a board after growing")
	}
	if strings.Contains(m.View(), tooSmallText) {
		t.Error("view still reports too small")
	}
}

func TestPreviewIgnoresMouseAndResize(t *testing.T) {
	cfg := config.DefaultSaverConfig()
	m := NewSaverModel(SaverOptions{
		Config:  cfg,
		Palette: palette.Default(),
		Seed:    1,
		Inline:  true,
	})
	if w, h := m.Sim().Width(), m.Sim().Height(); w != cfg.Preview.Width/2 || h != cfg.Preview.Height {
		t.Errorf("preview board = %dx%d", w, h)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionMotion})
	if m.IsQuitting() {
		t.Error("preview must ignore the mouse")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 60})
	if m.Sim().Width() != cfg.Preview.Width/2 {
		t.Error("preview must keep its box size")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Error("preview must quit on key")
	}
}

func TestRecorderReceivesSummary(t *testing.T) {
	rec := &Recorder{}
	m := NewSaverModel(SaverOptions{
		Config:   config.DefaultSaverConfig(),
		Palette:  palette.Default(),
		Seed:     3,
		Width:    40,
		Height:   20,
		Recorder: rec,
	})
	if _, ok := rec.Summary(); ok {
		t.Fatal("recorder must be empty before the first tick")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	s, ok := rec.Summary()
	if !ok || s.Stats.Ticks != 1 || s.ExitReason != "" {
		t.Errorf("unexpected summary after tick: %+v", s)
	}

	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	s, _ = rec.Summary()
	if s.ExitReason != ExitKey {
		t.Errorf("ExitReason = %q, want %q", s.ExitReason, ExitKey)
	}
}

func TestSummarySession(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := Summary{Started: start, Duration: time.Minute, ExitReason: ExitMouse}
	s.Stats.Ticks = 600
	s.Stats.Lines = 3

	sess := s.Session("abc", storage.ModeRun)
	if sess.SessionID != "abc" || sess.Mode != storage.ModeRun {
		t.Errorf("unexpected ids: %+v", sess)
	}
	if !sess.StartedAt.Equal(start) || sess.Duration != time.Minute {
		t.Errorf("unexpected times: %+v", sess)
	}
	if sess.Ticks != 600 || sess.Lines != 3 || sess.ExitReason != ExitMouse {
		t.Errorf("unexpected counters: %+v", sess)
	}
}
