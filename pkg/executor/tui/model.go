package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickauthhq/quickauth/pkg/session"
)

// model represents the state of the TUI application.
// It contains all components needed for the interactive terminal interface.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	spinner  spinner.Model

	// Session integration
	ctx    context.Context
	helper *session.Helper
	guard  *session.HostGuard

	// Customization
	header string // Custom ASCII art header (empty means use default)

	// Server list state
	servers  []string
	selected int

	// UI state
	overlay *overlayState
	toast   *toastNotification

	// Session activity counters
	sessionsOpened int // Sessions established this run
	pollsActive    int // Dismissal loops still polling

	statusLine string // Last session notice, shown in the bottom bar

	// Window dimensions
	width  int
	height int
	ready  bool

	// Application state
	shouldQuit bool // Flag to trigger application exit
}

// toastNotification represents a temporary notification message
type toastNotification struct {
	active    bool
	message   string
	details   string
	icon      string
	isError   bool
	showUntil time.Time
}

// initialModel creates the model with its Bubble Tea components configured.
func initialModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(salmonPink)

	return model{
		viewport: viewport.New(80, 20),
		spinner:  s,
		overlay:  newOverlayState(),
		toast:    &toastNotification{},
	}
}

// Init starts the spinner tick loop.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Servers returns the registered server URLs in display order.
// Implements types.StateProvider for overlays.
func (m *model) Servers() []string {
	result := make([]string, len(m.servers))
	copy(result, m.servers)
	return result
}

// selectedServer returns the currently highlighted server URL, or "" when
// the list is empty.
func (m *model) selectedServer() string {
	if len(m.servers) == 0 || m.selected < 0 || m.selected >= len(m.servers) {
		return ""
	}
	return m.servers[m.selected]
}

// clampSelection keeps the selection inside the list after edits.
func (m *model) clampSelection() {
	if m.selected >= len(m.servers) {
		m.selected = len(m.servers) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
