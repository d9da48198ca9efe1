package tui

import (
	"io"
	"math/rand"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-saver/internal/config"
	"github.com/vovakirdan/tetris-saver/internal/core"
	"github.com/vovakirdan/tetris-saver/internal/palette"
	"github.com/vovakirdan/tetris-saver/internal/storage"
	"github.com/vovakirdan/tetris-saver/internal/tetris"
)

// Exit reasons recorded with a session.
const (
	ExitKey        = "key"
	ExitMouse      = "mouse"
	ExitDisconnect = "disconnect"
)

const tooSmallText = "terminal too small"

// Summary describes a finished (or running) saver session.
type Summary struct {
	Started    time.Time
	Duration   time.Duration
	Stats      tetris.Stats
	ExitReason string
}

// Session converts the summary into a history record.
func (s Summary) Session(sessionID, mode string) storage.Session {
	return storage.Session{
		SessionID:  sessionID,
		Mode:       mode,
		StartedAt:  s.Started,
		Duration:   s.Duration,
		Ticks:      int64(s.Stats.Ticks),
		Pieces:     int64(s.Stats.Pieces),
		Lines:      int64(s.Stats.Lines),
		Wipes:      int64(s.Stats.Wipes),
		ExitReason: s.ExitReason,
	}
}

// Recorder receives the latest summary from a running model. It lets a
// caller that cannot see the final model, like an SSH handler, read the
// outcome after the program ends.
type Recorder struct {
	mu      sync.Mutex
	summary Summary
	ok      bool
}

func (r *Recorder) record(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = s
	r.ok = true
}

// Summary returns the last recorded summary. ok is false if the model never
// reported one.
func (r *Recorder) Summary() (s Summary, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary, r.ok
}

// SaverOptions configures a saver model.
type SaverOptions struct {
	Config  config.SaverConfig
	Palette palette.Palette
	Seed    int64 // 0 means time-based

	// Width and Height are the initial screen size. Full-screen models
	// follow window resizes; inline models keep the preview box size.
	Width, Height int

	// Inline runs the small preview: no alt screen, fixed size, and only a
	// key press ends it.
	Inline bool

	Recorder *Recorder
	Logger   *log.Logger
}

// SaverModel is the Bubble Tea model running the falling-blocks simulation.
type SaverModel struct {
	opts   SaverOptions
	cfg    core.RuntimeConfig
	layout tetris.Layout
	rng    *rand.Rand
	sim    *tetris.Sim
	screen *core.Screen
	theme  *Theme
	logger *log.Logger

	started time.Time
	carried tetris.Stats // stats of boards replaced by resizes

	anchorSet        bool
	anchorX, anchorY int

	exitReason string
	quitting   bool
}

// NewSaverModel creates a saver model and its first board.
func NewSaverModel(opts SaverOptions) SaverModel {
	opts.Config.Normalize()

	// Use time-based seed if not specified
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, h := opts.Width, opts.Height
	if opts.Inline {
		w, h = opts.Config.Preview.Width, opts.Config.Preview.Height
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := SaverModel{
		opts:    opts,
		cfg:     opts.Config.Runtime(w, h, seed),
		rng:     rand.New(rand.NewSource(seed)),
		screen:  core.NewScreen(w, h),
		theme:   NewTheme(opts.Palette, opts.Config.Background),
		logger:  logger,
		started: time.Now(),
	}
	m.rebuild()
	return m
}

// rebuild replaces the board with one sized to the current screen.
func (m *SaverModel) rebuild() {
	if m.sim != nil {
		m.carried = addStats(m.carried, m.sim.Stats())
	}

	m.screen.Resize(m.cfg.ScreenW, m.cfg.ScreenH)
	m.layout = tetris.LayoutFor(m.cfg, m.opts.Config.ShowNext)

	bw, bh := m.cfg.BoardSize()
	sim, err := tetris.New(bw, bh, m.rng)
	if err != nil {
		m.logger.Debug("board not created", "error", err)
		m.sim = nil
		return
	}
	sim.SetJitterRange(m.opts.Config.JitterRange)
	m.sim = sim
	m.logger.Debug("board created", "width", bw, "height", bh)
}

// Init starts the tick loop.
func (m SaverModel) Init() tea.Cmd {
	return tickCmd(m.cfg.Interval)
}

// Update handles messages and updates the model state.
func (m SaverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.quit(ExitKey)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleMouse ends the session once the pointer has travelled further than
// the configured threshold from where it was first seen.
func (m SaverModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.opts.Inline {
		return m, nil
	}
	if !m.anchorSet {
		m.anchorX, m.anchorY = msg.X, msg.Y
		m.anchorSet = true
		return m, nil
	}

	limit := m.opts.Config.ExitThreshold
	if core.Abs(msg.X-m.anchorX) > limit || core.Abs(msg.Y-m.anchorY) > limit {
		return m.quit(ExitMouse)
	}
	return m, nil
}

// handleResize recreates the board for the new terminal size.
func (m SaverModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if m.opts.Inline {
		return m, nil
	}
	if msg.Width == m.cfg.ScreenW && msg.Height == m.cfg.ScreenH && m.sim != nil {
		return m, nil
	}

	m.cfg.ScreenW = msg.Width
	m.cfg.ScreenH = msg.Height
	m.rebuild()
	return m, nil
}

// handleTick advances the simulation by one step.
func (m SaverModel) handleTick() (tea.Model, tea.Cmd) {
	if m.sim != nil {
		res := m.sim.Step()
		if res.Wiped {
			m.logger.Debug("board wiped", "pieces", m.sim.Stats().Pieces)
		}
	}
	m.record()

	// Continue ticking
	return m, tickCmd(m.cfg.Interval)
}

func (m SaverModel) quit(reason string) (tea.Model, tea.Cmd) {
	m.exitReason = reason
	m.quitting = true
	m.record()
	return m, tea.Quit
}

func (m SaverModel) record() {
	if m.opts.Recorder != nil {
		m.opts.Recorder.record(m.Summary())
	}
}

// Stats returns the counters accumulated over every board of this session.
func (m SaverModel) Stats() tetris.Stats {
	if m.sim == nil {
		return m.carried
	}
	return addStats(m.carried, m.sim.Stats())
}

// Summary returns the session summary so far.
func (m SaverModel) Summary() Summary {
	return Summary{
		Started:    m.started,
		Duration:   time.Since(m.started),
		Stats:      m.Stats(),
		ExitReason: m.exitReason,
	}
}

// Sim returns the current simulation, or nil if the screen is too small.
func (m SaverModel) Sim() *tetris.Sim {
	return m.sim
}

// IsQuitting returns true once an exit event was seen.
func (m SaverModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m SaverModel) View() string {
	if m.quitting {
		return ""
	}

	if m.sim == nil {
		m.screen.Clear()
		x := (m.screen.Width() - len(tooSmallText)) / 2
		m.screen.DrawText(core.Max(x, 0), m.screen.Height()/2, tooSmallText, core.ColorGray)
	} else {
		m.sim.Render(m.screen, m.layout)
	}
	return RenderScreen(m.screen, m.theme)
}

func addStats(a, b tetris.Stats) tetris.Stats {
	return tetris.Stats{
		Ticks:   a.Ticks + b.Ticks,
		Pieces:  a.Pieces + b.Pieces,
		Lines:   a.Lines + b.Lines,
		Wipes:   a.Wipes + b.Wipes,
		Jitters: a.Jitters + b.Jitters,
	}
}

// RunSaver runs the full-screen saver until a key press or mouse movement.
func RunSaver(opts SaverOptions) (Summary, error) {
	opts.Inline = false
	model := NewSaverModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Motion without buttons ends the saver
	)
	return runModel(p, model)
}

// RunPreview runs the saver in a small inline box until a key press.
func RunPreview(opts SaverOptions) (Summary, error) {
	opts.Inline = true
	model := NewSaverModel(opts)
	return runModel(tea.NewProgram(model), model)
}

func runModel(p *tea.Program, initial SaverModel) (Summary, error) {
	finalModel, err := p.Run()
	if err != nil {
		return initial.Summary(), err
	}
	m, ok := finalModel.(SaverModel)
	if !ok {
		return initial.Summary(), nil
	}
	return m.Summary(), nil
}
