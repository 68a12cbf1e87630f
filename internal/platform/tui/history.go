package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gunpong/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats sidebar
	sidebarWidth       = 24 // Width of the stats sidebar
	defaultHistory     = 50 // Matches to load
)

// historyFilters are the mode tabs; empty means all modes.
var historyFilters = []string{"", "1v1", "1vAI"}

// HistoryStore is the part of the store the history screen reads.
type HistoryStore interface {
	RecentMatches(limit int) ([]storage.MatchResult, error)
	Stats() (*storage.Stats, error)
}

var _ HistoryStore = (*storage.Store)(nil)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextFilter, k.PrevFilter, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	store       HistoryStore
	limit       int
	all         []storage.MatchResult
	matches     []storage.MatchResult // Filtered view of all
	stats       *storage.Stats
	loadErr     error
	filter      int
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history model and loads the recent matches.
func NewHistoryModel(store HistoryStore, limit, width, height int) HistoryModel {
	if limit <= 0 {
		limit = defaultHistory
	}
	m := HistoryModel{
		store:       store,
		limit:       limit,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 13},
		{Title: "Mode", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 7},
		{Title: "Time", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

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

// load reads matches and stats from the store.
func (m *HistoryModel) load() {
	m.all, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.applyFilter()
		return
	}

	matches, err := m.store.RecentMatches(m.limit)
	if err != nil {
		m.loadErr = err
	} else {
		m.all = matches
	}
	if stats, err := m.store.Stats(); err == nil {
		m.stats = stats
	} else if m.loadErr == nil {
		m.loadErr = err
	}
	m.applyFilter()
}

// applyFilter keeps the matches of the selected mode and refreshes the table.
func (m *HistoryModel) applyFilter() {
	mode := historyFilters[m.filter]
	m.matches = m.matches[:0]
	for _, r := range m.all {
		if mode == "" || r.Mode == mode {
			m.matches = append(m.matches, r)
		}
	}
	m.table.SetRows(historyRows(m.matches))
	m.table.GotoTop()
}

func historyRows(matches []storage.MatchResult) []table.Row {
	rows := make([]table.Row, len(matches))
	for i, r := range matches {
		rows[i] = table.Row{
			r.FinishedAt.Format("Jan 02 15:04"),
			r.Mode,
			fmt.Sprintf("%d : %d", r.LeftScore, r.RightScore),
			r.Winner,
			formatPlayed(r.Duration.Milliseconds()),
		}
	}
	return rows
}

// formatPlayed renders milliseconds as m:ss.
func formatPlayed(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(historyFilters)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter + len(historyFilters) - 1) % len(historyFilters)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

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

	tabs := make([]string, len(historyFilters))
	for i, f := range historyFilters {
		name := f
		if name == "" {
			name = "All"
		}
		if i == m.filter {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderSidebar renders win totals per side and per mode.
func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)
	return sidebarStyle.Render(statsText(m.stats))
}

// statsText formats aggregated statistics as plain lines.
func statsText(st *storage.Stats) string {
	var b strings.Builder
	b.WriteString("Totals\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")
	if st == nil || st.Matches == 0 {
		b.WriteString("No matches\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Matches:    %d\n", st.Matches)
	fmt.Fprintf(&b, "Left wins:  %d\n", st.LeftWins)
	fmt.Fprintf(&b, "Right wins: %d\n", st.RightWins)

	modes := make([]string, 0, len(st.ByMode))
	for mode := range st.ByMode {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	for _, mode := range modes {
		ms := st.ByMode[mode]
		fmt.Fprintf(&b, "\n%s: %d played\n", mode, ms.Matches)
		fmt.Fprintf(&b, "  L %d / R %d\n", ms.LeftWins, ms.RightWins)
		fmt.Fprintf(&b, "  %s total\n", formatPlayed(ms.Played.Milliseconds()))
	}
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Cannot read match history:\n" + m.loadErr.Error())
	}
	if len(m.matches) == 0 {
		return emptyStyle.Render("No matches recorded yet.\nFinish a game to fill the history!")
	}
	return m.table.View()
}

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the match history screen.
func RunHistory(store HistoryStore, limit, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
