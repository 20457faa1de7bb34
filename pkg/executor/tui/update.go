package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickauthhq/quickauth/pkg/config"
	"github.com/quickauthhq/quickauth/pkg/executor/tui/overlay"
	tuitypes "github.com/quickauthhq/quickauth/pkg/executor/tui/types"
	"github.com/quickauthhq/quickauth/pkg/session"
)

var debugLog *log.Logger

func initDebugLog() {
	if debugLog != nil {
		return // Already initialized
	}

	// Create debug log file
	f, err := os.OpenFile("quickauth-tui-debug.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Warning: error opening debug log file: %v", err)
		// Create a no-op logger to avoid nil pointer panics
		debugLog = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags|log.Lshortfile)
		return
	}
	debugLog = log.New(f, "", log.LstdFlags|log.Lshortfile)
	debugLog.Printf("Debug logging initialized")
}

// Update handles all state updates for the TUI model.
// This is the main event loop handler for Bubble Tea.
//
// Uses pointer receiver to ensure overlay mutations via ActionHandler persist.
// Without pointer receiver, &m passed to overlays points to a local copy,
// causing state changes (ShowToast, ClearOverlay, etc.) to be lost.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Check if quit was requested by an overlay or component
	if m.shouldQuit {
		return m, tea.Quit
	}

	var vpCmd tea.Cmd

	// Handle spinner tick messages
	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		debugLog.Printf("Received tea.WindowSizeMsg: width=%d, height=%d", msg.Width, msg.Height)
		return m.handleWindowResize(msg)

	case session.Notice:
		debugLog.Printf("Received session.Notice: %s", msg.String())
		return m.handleSessionNotice(msg)

	case tuitypes.ToastMsg:
		debugLog.Printf("Received types.ToastMsg: %s", msg.Message)
		m.ShowToast(msg.Message, msg.Details, msg.Icon, msg.IsError)
		return m, spinnerCmd

	case tea.MouseMsg:
		debugLog.Printf("Received tea.MouseMsg")
		// If overlay is active, forward mouse events to it
		if m.overlay.isActive() {
			updatedOverlay, overlayCmd := m.overlay.overlay.Update(msg, m, m)

			// Check if overlay returned nil (signals to close)
			if updatedOverlay == nil {
				m.overlay.deactivate()
				m.refreshViewport()
				return m, overlayCmd
			}

			m.overlay.overlay = updatedOverlay
			return m, overlayCmd
		}

		// Route mouse events to viewport for scrolling
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, tea.Batch(vpCmd, spinnerCmd)

	case tea.KeyMsg:
		debugLog.Printf("Received tea.KeyMsg: %s", msg.String())
		return m.handleKeyPress(msg, spinnerCmd)

	default:
		// Forward anything else to the active overlay so timed messages
		// like cursor blink ticks keep flowing, and so a closing overlay's
		// command is not dropped
		if m.overlay.isActive() {
			updatedOverlay, overlayCmd := m.overlay.overlay.Update(msg, m, m)
			if updatedOverlay == nil {
				m.ClearOverlay()
				m.refreshViewport()
			} else {
				m.overlay.overlay = updatedOverlay
			}
			return m, tea.Batch(overlayCmd, spinnerCmd)
		}
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(vpCmd, spinnerCmd)
}

// calculateViewportHeight computes the viewport height from the window size
func (m *model) calculateViewportHeight() int {
	headerHeight := 10   // ASCII art (6) + tips (1) + status bar (1) + blank line (1) + spacing (1)
	statusBarHeight := 2 // activity line + bottom bar

	viewportHeight := m.height - headerHeight - statusBarHeight
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	return viewportHeight
}

// handleWindowResize processes window size change events
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.viewport.Width = m.width - 4
	m.viewport.Height = m.calculateViewportHeight()
	m.ready = true
	m.refreshViewport()
	return m, nil
}

// handleSessionNotice processes notices from the session helper.
// Only the authentication notice surfaces as a toast; dismissal and
// exhaustion are routine and just update the activity line.
func (m *model) handleSessionNotice(notice session.Notice) (tea.Model, tea.Cmd) {
	m.statusLine = notice.String()

	switch notice.Kind {
	case session.NoticeSessionOpened:
		m.sessionsOpened++
		m.pollsActive++
		m.ShowToast("Authenticated", notice.String(), "🔓", false)
	case session.NoticeViewDismissed, session.NoticePollExhausted:
		if m.pollsActive > 0 {
			m.pollsActive--
		}
	}

	m.refreshViewport()
	return m, nil
}

// handleKeyPress processes keyboard input
func (m *model) handleKeyPress(msg tea.KeyMsg, spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	// If an overlay is active, pass keys to the overlay
	if m.overlay.isActive() {
		updated, cmd := m.overlay.overlay.Update(msg, m, m)
		// If overlay returns nil, it wants to close
		if updated == nil {
			m.ClearOverlay()
			m.refreshViewport()
		} else {
			m.overlay.overlay = updated
		}
		return m, tea.Batch(cmd, spinnerCmd)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.refreshViewport()
		}

	case "down", "j":
		if m.selected < len(m.servers)-1 {
			m.selected++
			m.refreshViewport()
		}

	case "enter":
		return m.handleAuthorize(spinnerCmd)

	case "a":
		return m, tea.Batch(m.showAddServerOverlay(), spinnerCmd)

	case "e":
		return m, tea.Batch(m.showEditServerOverlay(), spinnerCmd)

	case "d":
		m.showDeleteConfirm()

	case "c":
		m.copySelectedServer()

	case "r":
		m.reloadConfig()

	case "?":
		m.showHelpOverlay()
	}

	return m, spinnerCmd
}

// handleAuthorize opens the credentials dialog for the selected server
func (m *model) handleAuthorize(spinnerCmd tea.Cmd) (tea.Model, tea.Cmd) {
	server := m.selectedServer()
	if server == "" {
		m.ShowToast("No server selected", "Press 'a' to add a server first", "❌", true)
		return m, spinnerCmd
	}

	if m.guard != nil && !m.guard.Allows(server) {
		m.ShowToast("Host not allowed", fmt.Sprintf("%s is outside the allowed hosts", server), "🚫", true)
		return m, spinnerCmd
	}

	return m, tea.Batch(m.showCredentialsOverlay(server), spinnerCmd)
}

// showCredentialsOverlay opens the username/password dialog.
// Credentials are used once to establish the session and never stored.
func (m *model) showCredentialsOverlay(server string) tea.Cmd {
	form := overlay.NewInputOverlay(
		fmt.Sprintf("Authorize %s", displayURL(server, 48)),
		[]overlay.Field{
			{
				Label: "Username",
				Key:   "username",
				Type:  overlay.FieldTypeText,
				Validator: func(v string) error {
					if v == "" {
						return fmt.Errorf("username cannot be empty")
					}
					return nil
				},
			},
			{
				Label: "Password",
				Key:   "password",
				Type:  overlay.FieldTypePassword,
				Validator: func(v string) error {
					if v == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				},
			},
		},
		func(values map[string]string) error {
			return m.establishSession(server, values["username"], values["password"])
		},
		nil,
	)

	m.overlay.activate(tuitypes.OverlayModeCredentials, form)
	return overlay.TickCursorBlink()
}

// establishSession hands the credentials to the session helper. The helper
// works in the background; its notices arrive as messages later.
func (m *model) establishSession(server, username, password string) error {
	if m.helper == nil {
		return fmt.Errorf("session helper is not available")
	}

	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return m.helper.EstablishSession(ctx, server, username, password)
}

// showAddServerOverlay opens the dialog for registering a new server
func (m *model) showAddServerOverlay() tea.Cmd {
	form := overlay.NewInputOverlay(
		"Add Server",
		[]overlay.Field{
			{
				Label: "Server URL",
				Key:   "url",
				Type:  overlay.FieldTypeText,
				Validator: func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("server URL cannot be empty")
					}
					return nil
				},
			},
		},
		func(values map[string]string) error {
			return m.addServer(values["url"])
		},
		nil,
	)

	m.overlay.activate(tuitypes.OverlayModeServerForm, form)
	return overlay.TickCursorBlink()
}

// showEditServerOverlay opens the dialog for editing the selected server
func (m *model) showEditServerOverlay() tea.Cmd {
	server := m.selectedServer()
	if server == "" {
		return nil
	}
	index := m.selected

	form := overlay.NewInputOverlay(
		"Edit Server",
		[]overlay.Field{
			{
				Label: "Server URL",
				Key:   "url",
				Value: server,
				Type:  overlay.FieldTypeText,
				Validator: func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("server URL cannot be empty")
					}
					return nil
				},
			},
		},
		func(values map[string]string) error {
			return m.updateServer(index, values["url"])
		},
		nil,
	)

	m.overlay.activate(tuitypes.OverlayModeServerForm, form)
	return overlay.TickCursorBlink()
}

// showDeleteConfirm opens the removal confirmation for the selected server
func (m *model) showDeleteConfirm() {
	server := m.selectedServer()
	if server == "" {
		return
	}
	index := m.selected

	confirm := overlay.NewConfirmOverlay(
		"Remove Server",
		"Remove this server from the registry?",
		[]string{server},
		func() {
			if err := m.removeServer(index); err != nil {
				m.ShowToast("Remove failed", err.Error(), "❌", true)
			}
		},
		nil,
	)

	m.overlay.activate(tuitypes.OverlayModeConfirm, confirm)
}

// showHelpOverlay opens the key reference
func (m *model) showHelpOverlay() {
	content := `Keys:

  ↑/k, ↓/j      Move selection
  Enter         Authorize the selected server
  a             Add a server
  e             Edit the selected server
  d             Remove the selected server
  c             Copy the selected server URL
  r             Reload the configuration file
  ?             Show this help
  q, Ctrl+C     Quit

Authorizing asks for a username and password, then opens a browser
view that carries them to the server so the session is established.
The view is closed automatically once it shows up in the view list;
if it never does, it is left open for you.

Credentials are used once and never stored. You will be asked again
next time.`

	m.overlay.activate(tuitypes.OverlayModeHelp, overlay.NewHelpOverlay("QuickAuth Help", content))
}

// copySelectedServer puts the selected server URL on the system clipboard
func (m *model) copySelectedServer() {
	server := m.selectedServer()
	if server == "" {
		return
	}

	if err := clipboard.WriteAll(server); err != nil {
		m.ShowToast("Copy failed", err.Error(), "❌", true)
		return
	}
	m.ShowToast("Copied to clipboard", server, "📋", false)
}

// reloadConfig re-reads the configuration file and refreshes the list
func (m *model) reloadConfig() {
	if !config.IsInitialized() {
		m.ShowToast("Config not initialized", "", "❌", true)
		return
	}

	if err := config.Global().LoadAll(); err != nil {
		m.ShowToast("Reload failed", err.Error(), "❌", true)
		return
	}

	m.reloadServers()
	m.ShowToast("Config reloaded", fmt.Sprintf("%d servers", len(m.servers)), "🔄", false)
}

// addServer registers a server and persists the registry
func (m *model) addServer(rawURL string) error {
	servers := config.GetServers()
	if servers == nil {
		return fmt.Errorf("config is not initialized")
	}

	if err := servers.AddServer(rawURL); err != nil {
		return err
	}
	if err := config.Global().SaveAll(); err != nil {
		return err
	}

	m.reloadServers()
	m.ShowToast("Server added", strings.TrimSpace(rawURL), "✅", false)
	return nil
}

// updateServer replaces a registry entry and persists the registry
func (m *model) updateServer(index int, rawURL string) error {
	servers := config.GetServers()
	if servers == nil {
		return fmt.Errorf("config is not initialized")
	}

	if err := servers.UpdateServer(index, rawURL); err != nil {
		return err
	}
	if err := config.Global().SaveAll(); err != nil {
		return err
	}

	m.reloadServers()
	m.ShowToast("Server updated", strings.TrimSpace(rawURL), "✅", false)
	return nil
}

// removeServer drops a registry entry and persists the registry
func (m *model) removeServer(index int) error {
	servers := config.GetServers()
	if servers == nil {
		return fmt.Errorf("config is not initialized")
	}

	removed := ""
	if index >= 0 && index < len(m.servers) {
		removed = m.servers[index]
	}

	if err := servers.RemoveServer(index); err != nil {
		return err
	}
	if err := config.Global().SaveAll(); err != nil {
		return err
	}

	m.reloadServers()
	m.ShowToast("Server removed", removed, "🗑️", false)
	return nil
}

// reloadServers refreshes the in-memory list from the registry section
func (m *model) reloadServers() {
	if servers := config.GetServers(); servers != nil {
		m.servers = servers.Servers()
	} else {
		m.servers = nil
	}
	m.clampSelection()
	m.refreshViewport()
}

// refreshViewport re-renders the server list into the viewport
func (m *model) refreshViewport() {
	m.viewport.SetContent(m.buildServerList())
}
