package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-saver/internal/palette"
)

var channelNames = [3]string{"R", "G", "B"}

var configTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	MarginBottom(1)

var configSelectedStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229"))

var configDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

var configErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// ConfigureModel is the Bubble Tea model for the palette settings dialog.
type ConfigureModel struct {
	path      string
	palette   palette.Palette
	cursor    int
	editing   bool
	field     int
	inputs    [3]textinput.Model
	keys      ConfigureKeyMap
	help      help.Model
	status    string
	statusErr bool
	saved     bool
	quitting  bool
}

// NewConfigureModel creates a dialog editing p. Saving writes to path.
func NewConfigureModel(path string, p palette.Palette) ConfigureModel {
	m := ConfigureModel{
		path:    path,
		palette: p,
		keys:    DefaultConfigureKeyMap(),
		help:    help.New(),
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = channelNames[i] + " "
		in.Placeholder = "0"
		in.CharLimit = 3
		in.Width = 3
		m.inputs[i] = in
	}
	return m
}

// Init initializes the dialog.
func (m ConfigureModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dialog.
func (m ConfigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConfigureModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < palette.Size-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Reset):
		m.palette[m.cursor] = palette.Default()[m.cursor]
		m.setStatus(fmt.Sprintf("%s reset to default", palette.Names[m.cursor]), false)

	case key.Matches(msg, m.keys.Save):
		if err := m.palette.Save(m.path); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.saved = true
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfigureModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		m.setStatus("", false)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		c, err := m.inputColor()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.palette[m.cursor] = c
		m.stopEdit()
		m.setStatus(fmt.Sprintf("%s set to %s", palette.Names[m.cursor], c), false)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		cmd := m.focus((m.field + 1) % len(m.inputs))
		return m, cmd

	case key.Matches(msg, m.keys.Prev):
		cmd := m.focus((m.field + len(m.inputs) - 1) % len(m.inputs))
		return m, cmd
	}

	// Channels accept digits only
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

func (m ConfigureModel) startEdit() (tea.Model, tea.Cmd) {
	c := m.palette[m.cursor]
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		m.inputs[i].SetValue(strconv.Itoa(int(v)))
		m.inputs[i].CursorEnd()
	}
	m.editing = true
	m.setStatus("", false)
	cmd := m.focus(0)
	return m, cmd
}

func (m *ConfigureModel) stopEdit() {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *ConfigureModel) focus(field int) tea.Cmd {
	m.inputs[m.field].Blur()
	m.field = field
	return m.inputs[field].Focus()
}

// inputColor parses the three channel inputs.
func (m ConfigureModel) inputColor() (palette.RGB, error) {
	var v [3]uint8
	for i, in := range m.inputs {
		n, err := strconv.Atoi(strings.TrimSpace(in.Value()))
		if err != nil || n < 0 || n > 255 {
			return palette.RGB{}, fmt.Errorf("%s must be between 0 and 255", channelNames[i])
		}
		v[i] = uint8(n)
	}
	return palette.RGB{R: v[0], G: v[1], B: v[2]}, nil
}

func (m *ConfigureModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the dialog.
func (m ConfigureModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(configTitleStyle.Render("TETRIS SAVER - COLORS"))
	b.WriteString("\n")

	for i, c := range m.palette {
		cursor := "  "
		nameStyle := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			nameStyle = configSelectedStyle
		}

		body := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("   ")
		edge := lipgloss.NewStyle().Background(lipgloss.Color(c.Darker().Hex())).Render(" ")

		line := fmt.Sprintf("%s%s  %s%s  ", cursor, nameStyle.Render(palette.Names[i]), body, edge)
		if m.editing && i == m.cursor {
			views := make([]string, len(m.inputs))
			for j, in := range m.inputs {
				views[j] = in.View()
			}
			line += strings.Join(views, "  ")
		} else {
			line += configDimStyle.Render(fmt.Sprintf("%3d %3d %3d  %s", c.R, c.G, c.B, c.Hex()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.status == "":
		b.WriteString(configDimStyle.Render(m.path))
	case m.statusErr:
		b.WriteString(configErrStyle.Render(m.status))
	default:
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")
	b.WriteString(configDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Palette returns the edited palette.
func (m ConfigureModel) Palette() palette.Palette {
	return m.palette
}

// Saved returns true if the palette was written to disk.
func (m ConfigureModel) Saved() bool {
	return m.saved
}

// IsQuitting returns true once the dialog was closed.
func (m ConfigureModel) IsQuitting() bool {
	return m.quitting
}

// RunConfigure runs the palette dialog and reports whether it saved.
func RunConfigure(path string, p palette.Palette) (palette.Palette, bool, error) {
	model := NewConfigureModel(path, p)

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return p, false, err
	}

	m, ok := finalModel.(ConfigureModel)
	if !ok {
		return p, false, nil
	}
	return m.Palette(), m.Saved(), nil
}
