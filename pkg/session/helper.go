package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Credential validation errors. These are the only errors EstablishSession
// returns; everything that happens after the inputs are accepted is
// swallowed.
var (
	ErrEmptyUsername = errors.New("username must not be empty")
	ErrEmptyPassword = errors.New("password must not be empty")
)

// ViewInfo identifies an open browser view and the URL it displays.
type ViewInfo struct {
	ID  string
	URL string
}

// ViewHost is the browser-view surface the helper drives: open a view on a
// URL, enumerate the open views, close one by ID. Implementations decide
// what a "view" is; the helper only ever compares displayed URLs.
type ViewHost interface {
	OpenView(ctx context.Context, rawURL string) (ViewInfo, error)
	ListViews(ctx context.Context) ([]ViewInfo, error)
	CloseView(ctx context.Context, id string) error
}

// NoticeKind enumerates the helper's lifecycle notifications.
type NoticeKind int

const (
	// NoticeSessionOpened fires once navigation has been requested. It does
	// not mean the server accepted the credentials, only that the
	// authenticated request is on its way.
	NoticeSessionOpened NoticeKind = iota

	// NoticeViewDismissed fires when the helper view was found and closed.
	NoticeViewDismissed

	// NoticePollExhausted fires when the polling budget ran out without
	// finding the view. This is informational, never an error: the view
	// simply stays open.
	NoticePollExhausted
)

// Notice reports progress of a session establishment. Server is the base
// URL as registered, never the credential-bearing URL. Attempt is set for
// dismissal and exhaustion notices.
type Notice struct {
	Kind    NoticeKind
	Server  string
	Attempt int
}

// Logger is the logging surface the helper needs. *logging.Logger satisfies
// it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}

// Helper establishes HTTP Basic Auth sessions by opening a browser view on
// a credential-embedded URL and then quietly dismissing that view once it
// shows up.
//
// Concurrent EstablishSession calls are intentionally uncoordinated: each
// runs its own dismissal loop, and two loops for the same server will race
// to close the same view. The first one wins and the loser's polling
// exhausts silently, which is harmless by the helper's own error posture.
type Helper struct {
	host     ViewHost
	schedule Schedule
	notify   func(Notice)
	logger   Logger
}

// Option configures a Helper.
type Option func(*Helper)

// WithSchedule overrides the default dismissal polling budget.
func WithSchedule(schedule Schedule) Option {
	return func(h *Helper) {
		h.schedule = schedule
	}
}

// WithNotify registers a callback for lifecycle notices. The callback runs
// on the dismissal goroutine and must not block for long.
func WithNotify(notify func(Notice)) Option {
	return func(h *Helper) {
		h.notify = notify
	}
}

// WithLogger sets the logger for swallowed host errors.
func WithLogger(logger Logger) Option {
	return func(h *Helper) {
		h.logger = logger
	}
}

// NewHelper creates a session helper on top of a view host.
func NewHelper(host ViewHost, opts ...Option) *Helper {
	h := &Helper{
		host:     host,
		schedule: DefaultSchedule(),
		notify:   func(Notice) {},
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Schedule returns the polling budget the helper runs with.
func (h *Helper) Schedule() Schedule {
	return h.schedule
}

// EstablishSession builds the credential-embedded URL for the server, opens
// a browser view on it, and starts the background dismissal loop. It
// returns as soon as navigation has been requested.
//
// Only invalid input produces an error: a base URL that is not an absolute
// URL, or an empty username or password. Every failure past that point,
// opening the view, listing views, closing the view, is swallowed and
// logged; the caller never hears about it.
func (h *Helper) EstablishSession(ctx context.Context, baseURL, username, password string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if password == "" {
		return ErrEmptyPassword
	}

	authURL, err := BuildAuthenticatedURL(baseURL, username, password)
	if err != nil {
		return err
	}

	h.logger.Infof("establishing session against %s", redactedURL(authURL))

	if _, err := h.host.OpenView(ctx, authURL); err != nil {
		// The view may still have opened, and even if it did not the
		// dismissal loop just exhausts quietly. Either way the user is
		// not interrupted.
		h.logger.Warnf("failed to open view for %s: %v", redactedURL(authURL), err)
	}

	h.notify(Notice{Kind: NoticeSessionOpened, Server: baseURL})

	go h.dismissLoop(ctx, baseURL, authURL)

	return nil
}

// dismissLoop polls the host for the helper view and closes the first match.
// One poll per attempt; a failed poll still consumes its attempt.
func (h *Helper) dismissLoop(ctx context.Context, baseURL, authURL string) {
	for attempt := 1; ; attempt++ {
		delay, ok := h.schedule.DelayBefore(attempt)
		if !ok {
			h.logger.Debugf("view for %s not found after %d attempts, leaving it open", redactedURL(authURL), attempt-1)
			h.notify(Notice{Kind: NoticePollExhausted, Server: baseURL, Attempt: attempt - 1})
			return
		}

		select {
		case <-ctx.Done():
			h.logger.Debugf("dismissal for %s stopped: %v", redactedURL(authURL), ctx.Err())
			return
		case <-time.After(delay):
		}

		views, err := h.host.ListViews(ctx)
		if err != nil {
			h.logger.Debugf("attempt %d: failed to list views: %v", attempt, err)
			continue
		}

		for _, view := range views {
			if !SameView(view.URL, authURL) {
				continue
			}

			if err := h.host.CloseView(ctx, view.ID); err != nil {
				h.logger.Debugf("attempt %d: failed to close view %s: %v", attempt, view.ID, err)
			}
			h.notify(Notice{Kind: NoticeViewDismissed, Server: baseURL, Attempt: attempt})
			return
		}
	}
}

// String renders a notice for logs and the CLI.
func (n Notice) String() string {
	switch n.Kind {
	case NoticeSessionOpened:
		return fmt.Sprintf("authenticated against %s", n.Server)
	case NoticeViewDismissed:
		return fmt.Sprintf("helper view for %s dismissed on attempt %d", n.Server, n.Attempt)
	case NoticePollExhausted:
		return fmt.Sprintf("helper view for %s still open after %d checks", n.Server, n.Attempt)
	default:
		return fmt.Sprintf("unknown notice for %s", n.Server)
	}
}
