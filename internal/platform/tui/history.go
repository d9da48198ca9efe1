package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-saver/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show totals sidebar
	sidebarWidth       = 24  // Width of totals sidebar
	maxSessions        = 200 // Max sessions to load
)

// historyModes are the tabs of the history browser. Empty means all modes.
var historyModes = []string{"", storage.ModeRun, storage.ModePreview, storage.ModeSSH}

// HistoryModel is the Bubble Tea model for browsing recorded sessions.
type HistoryModel struct {
	modeCursor  int
	sessions    []storage.Session // All loaded sessions
	visible     []storage.Session // Sessions of the selected mode
	totals      *storage.Totals
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history browser over store. A nil store shows
// an empty history.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		m.sessions, m.loadErr = store.RecentSessions(maxSessions)
		if m.loadErr == nil {
			m.totals, m.loadErr = store.Totals()
		}
	}

	m.table = m.createTable()
	m.filter()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 14},
		{Title: "Mode", Width: 8},
		{Title: "Duration", Width: 10},
		{Title: "Pieces", Width: 7},
		{Title: "Lines", Width: 6},
		{Title: "Wipes", Width: 6},
		{Title: "Exit", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, tabs, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// filter selects the sessions of the current mode and refreshes the table.
func (m *HistoryModel) filter() {
	mode := historyModes[m.modeCursor]
	m.visible = nil
	for _, s := range m.sessions {
		if mode == "" || s.Mode == mode {
			m.visible = append(m.visible, s)
		}
	}

	rows := make([]table.Row, len(m.visible))
	for i, s := range m.visible {
		rows[i] = table.Row{
			s.StartedAt.Format("Jan 02 15:04"),
			s.Mode,
			formatDuration(s.Duration),
			fmt.Sprintf("%d", s.Pieces),
			fmt.Sprintf("%d", s.Lines),
			fmt.Sprintf("%d", s.Wipes),
			s.ExitReason,
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Visible returns the sessions shown for the selected mode.
func (m HistoryModel) Visible() []storage.Session {
	return m.visible
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.modeCursor = (m.modeCursor + 1) % len(historyModes)
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.modeCursor--
			if m.modeCursor < 0 {
				m.modeCursor = len(historyModes) - 1
			}
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.filter()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("SESSION HISTORY", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderTotals(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the mode filter tabs.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyModes))
	for i, mode := range historyModes {
		name := mode
		if name == "" {
			name = "all"
		}
		if i == m.modeCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTotals renders the aggregate sidebar.
func (m HistoryModel) renderTotals() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Totals\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	t := m.totals
	if t == nil {
		t = &storage.Totals{}
	}
	fmt.Fprintf(&sb, "Sessions  %d\n", t.Sessions)
	fmt.Fprintf(&sb, "Time      %s\n", formatDuration(t.Duration))
	fmt.Fprintf(&sb, "Pieces    %d\n", t.Pieces)
	fmt.Fprintf(&sb, "Lines     %d\n", t.Lines)
	fmt.Fprintf(&sb, "Wipes     %d\n", t.Wipes)
	if !t.LastRun.IsZero() {
		fmt.Fprintf(&sb, "Last      %s", t.LastRun.Format("Jan 02 15:04"))
	}

	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load history:\n" + m.loadErr.Error())
	}
	if len(m.visible) == 0 {
		return emptyStyle.Render("No sessions recorded yet.\nRun the saver to start one!")
	}

	return m.table.View()
}

// IsQuitting returns true if the user closed the browser.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// formatDuration renders d as h:mm:ss or m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	secs := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
