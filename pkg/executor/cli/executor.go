// Package cli provides a one-shot command-line executor for QuickAuth.
//
// Example usage:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/quickauthhq/quickauth/pkg/browser"
//	    "github.com/quickauthhq/quickauth/pkg/executor/cli"
//	)
//
//	func main() {
//	    manager := browser.NewManager(browser.Options{Headless: true})
//	    defer manager.Shutdown()
//
//	    executor := cli.NewExecutor(manager)
//
//	    err := executor.Authorize(context.Background(),
//	        "https://dav.example.com/remote.php", "alice", "s3cret")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/quickauthhq/quickauth/pkg/logging"
	"github.com/quickauthhq/quickauth/pkg/session"
)

// Executor is a CLI-based executor that authorizes a single server and
// reports the outcome of the dismissal loop on its writer.
type Executor struct {
	host     session.ViewHost
	guard    *session.HostGuard
	logger   *logging.Logger
	writer   io.Writer
	schedule session.Schedule
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithGuard restricts which hosts may be authorized.
func WithGuard(guard *session.HostGuard) ExecutorOption {
	return func(e *Executor) {
		e.guard = guard
	}
}

// WithLogger sets the session log destination.
func WithLogger(logger *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithSchedule overrides the default dismissal schedule.
func WithSchedule(schedule session.Schedule) ExecutorOption {
	return func(e *Executor) {
		e.schedule = schedule
	}
}

// NewExecutor creates a new CLI executor on top of the given view host.
func NewExecutor(host session.ViewHost, opts ...ExecutorOption) *Executor {
	e := &Executor{
		host:     host,
		writer:   os.Stdout,
		schedule: session.DefaultSchedule(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Authorize establishes a session against the server and blocks until the
// dismissal loop reports a terminal notice or the context ends.
//
// Only invalid input is an error. A helper view that never shows up is
// reported as a warning and left open, matching the interactive behavior.
func (e *Executor) Authorize(ctx context.Context, server, username, password string) error {
	if e.guard != nil && !e.guard.Allows(server) {
		return fmt.Errorf("host not allowed: %s", server)
	}

	// Buffered beyond the two notices a single attempt can produce
	notices := make(chan session.Notice, 4)

	helperOpts := []session.Option{
		session.WithSchedule(e.schedule),
		session.WithNotify(func(n session.Notice) {
			notices <- n
		}),
	}
	if e.logger != nil {
		helperOpts = append(helperOpts, session.WithLogger(e.logger))
	}
	helper := session.NewHelper(e.host, helperOpts...)

	if err := helper.EstablishSession(ctx, server, username, password); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notice := <-notices:
			switch notice.Kind {
			case session.NoticeSessionOpened:
				fmt.Fprintf(e.writer, "🔓 %s\n", notice.String())
			case session.NoticeViewDismissed:
				fmt.Fprintf(e.writer, "✅ %s\n", notice.String())
				return nil
			case session.NoticePollExhausted:
				fmt.Fprintf(e.writer, "⚠️  %s\n", notice.String())
				return nil
			}
		}
	}
}
