// Package tui provides the interactive terminal interface for QuickAuth,
// a registry of HTTP Basic Auth servers that can be authorized with a
// keystroke.
//
// The TUI codebase is split into multiple files for better organization:
// - executor.go: Main executor implementation and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - overlay.go: Overlay state management and compositing
// - helpers.go: Utility functions
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickauthhq/quickauth/pkg/config"
	"github.com/quickauthhq/quickauth/pkg/logging"
	"github.com/quickauthhq/quickauth/pkg/session"
)

// Executor is a TUI-based executor that presents the server registry and
// drives authorization through the session helper.
type Executor struct {
	host    session.ViewHost
	guard   *session.HostGuard
	logger  *logging.Logger
	program *tea.Program
	header  string // Custom ASCII art header (optional)
}

// NewExecutor creates a new TUI executor on top of the given view host.
func NewExecutor(host session.ViewHost, guard *session.HostGuard, logger *logging.Logger, headerText string) *Executor {
	return &Executor{
		host:   host,
		guard:  guard,
		logger: logger,
		header: headerText,
	}
}

// Run starts the TUI executor and blocks until the user exits.
func (e *Executor) Run(ctx context.Context) error {
	// Initialize debug logging first
	initDebugLog()
	debugLog.Printf("TUI executor starting...")

	// Buffered so the helper's notify callback never blocks a poll loop
	// while the program is busy rendering.
	notices := make(chan session.Notice, 16)

	schedule := session.DefaultSchedule()
	if sessionCfg := config.GetSession(); sessionCfg != nil {
		attempts, interval, initialDelay := sessionCfg.GetSchedule()
		schedule = session.Schedule{
			Attempts:     attempts,
			Interval:     interval,
			InitialDelay: initialDelay,
		}
	}

	helperOpts := []session.Option{
		session.WithSchedule(schedule),
		session.WithNotify(func(n session.Notice) {
			select {
			case notices <- n:
			default:
				// Drop rather than stall the dismissal loop
			}
		}),
	}
	if e.logger != nil {
		helperOpts = append(helperOpts, session.WithLogger(e.logger))
	}
	helper := session.NewHelper(e.host, helperOpts...)

	m := initialModel()
	m.ctx = ctx
	m.helper = helper
	m.guard = e.guard
	m.header = e.header
	m.reloadServers()
	debugLog.Printf("Model initialized, %d servers in registry", len(m.servers))

	e.program = tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		// Listen for session notices and forward them to the TUI
		for notice := range notices {
			debugLog.Printf("Forwarding session notice to TUI: %s", notice.String())
			e.program.Send(notice)
		}
	}()

	if _, err := e.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	return nil
}
