package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunpong/internal/config"
	"github.com/vovakirdan/gunpong/internal/core"
	"github.com/vovakirdan/gunpong/internal/pong"
	"github.com/vovakirdan/gunpong/internal/storage"
)

// statusTTL is how long a platform status message stays on the HUD.
const statusTTL = 2 * time.Second

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Options configures one game session.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Mode    pong.Mode

	Store  *storage.Store // Nil disables match history
	Audio  pong.Sink      // Nil when muted
	Logger *log.Logger    // Nil discards

	ScreenshotDir string // Empty disables screenshots
	Clipboard     bool   // Allow ctrl+y to copy the frame
}

// DefaultScreenshotDir returns ~/.gunpong/screenshots.
func DefaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gunpong", "screenshots")
}

// Model is the Bubble Tea model running one match.
type Model struct {
	match  *pong.Match
	keys   *core.KeyState
	keymap KeyMap
	help   help.Model
	screen *core.Screen
	arena  *ArenaRenderer

	opts    Options
	runtime core.RuntimeConfig

	// now is the time of the latest tick. Key presses are stamped with it so
	// the hold window is measured on the tick clock.
	now         time.Time
	status      string
	statusUntil time.Time
	quitting    bool
}

// NewModel creates a model with a fresh match in the Idle phase.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	sinks := pong.MultiSink{LogSink{Logger: opts.Logger}, opts.Audio}
	if opts.Store != nil {
		sinks = append(sinks, StoreSink{Store: opts.Store, Logger: opts.Logger})
	}

	match := pong.New(opts.Config, cfg.Seed, sinks)
	if opts.Mode == pong.OneVsAI {
		match.ToggleMode()
	}

	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0))
	m := Model{
		match:   match,
		keys:    core.NewKeyState(opts.Config.Input.HoldWindow),
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		screen:  screen,
		arena:   NewArenaRenderer(screen, core.Rect{}),
		opts:    opts,
		runtime: cfg,
		now:     time.Now(),
	}
	m.help.Width = cfg.ScreenW
	m.layout()
	return m
}

// Match exposes the running match.
func (m Model) Match() *pong.Match {
	return m.match
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey routes held keys to the key state and applies control keys at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now
	action, command := m.keymap.MapKey(msg)

	switch command {
	case CommandHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case CommandScreenshot:
		m.setStatus(m.saveScreenshot(now), now)
		return m, nil
	case CommandCopy:
		m.setStatus(m.copyFrame(), now)
		return m, nil
	}

	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case isHeld(action):
		m.keys.Press(action, now)
	case action == core.ActionStart:
		m.match.Start(now)
	case action == core.ActionPause:
		m.match.Pause(now)
	case action == core.ActionReset:
		m.keys.Reset()
		m.match.Reset()
	case action == core.ActionToggleMode:
		m.keys.Reset()
		m.match.ToggleMode()
	}

	return m, nil
}

// handleResize processes window resize events. The arena rescales, the
// match keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// handleTick samples held keys and advances the match.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	in := m.keys.Snapshot(now)
	m.match.Tick(now, &in)

	if m.status != "" && !now.Before(m.statusUntil) {
		m.status = ""
	}

	return m, tickCmd(m.runtime.TickRate)
}

// layout sizes the screen buffer to leave room for the help view.
func (m *Model) layout() {
	helpH := lipgloss.Height(m.help.View(m.keymap))
	h := max(m.runtime.ScreenH-helpH, 0)
	m.screen.Resize(m.runtime.ScreenW, h)
	m.arena.SetArea(core.NewRect(0, HUDHeight, m.runtime.ScreenW, max(h-HUDHeight, 0)))
}

func (m *Model) setStatus(s string, now time.Time) {
	m.status = s
	m.statusUntil = now.Add(statusTTL)
}

// draw renders the match and the HUD into the screen buffer.
func (m Model) draw() {
	m.screen.Clear()
	m.match.Render(m.arena)
	DrawHUD(m.screen, HUD{
		Frame:    m.match.Frame(),
		LeftGun:  m.match.Gun(pong.Left),
		RightGun: m.match.Gun(pong.Right),
		Started:  m.match.Played(m.now) > 0,
		Status:   m.status,
	})
}

// saveScreenshot saves the current screen to a file and returns a status line.
func (m Model) saveScreenshot(now time.Time) string {
	if m.opts.ScreenshotDir == "" {
		return "Screenshots disabled"
	}
	m.draw()

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.warn("cannot create screenshot directory", err)
		return "Screenshot failed"
	}

	filename := fmt.Sprintf("gunpong_%s.txt", now.Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.warn("cannot save screenshot", err)
		return "Screenshot failed"
	}
	return "Saved " + filename
}

// copyFrame puts the current frame as plain text on the clipboard.
func (m Model) copyFrame() string {
	if !m.opts.Clipboard {
		return "Clipboard disabled"
	}
	m.draw()

	if err := writeClipboard(m.screen.String()); err != nil {
		m.warn("cannot copy frame", err)
		return "Copy failed"
	}
	return "Frame copied"
}

func (m Model) warn(msg string, err error) {
	if m.opts.Logger != nil {
		m.opts.Logger.Warn(msg, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keymap))
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
