package browser

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/quickauthhq/quickauth/pkg/session"
)

// Manager owns the Playwright runtime and every helper view opened through
// it. It satisfies session.ViewHost.
type Manager struct {
	mu          sync.RWMutex
	views       map[string]*View
	order       []string
	playwright  *playwright.Playwright
	headless    bool
	viewport    Viewport
	timeout     float64
	maxViews    int
	initialized bool
}

// NewManager creates a view host with the given options. Playwright itself
// is not started until the first view opens.
func NewManager(opts Options) *Manager {
	viewport := Viewport{
		Width:  DefaultViewportWidth,
		Height: DefaultViewportHeight,
	}
	if opts.Viewport != nil {
		viewport = *opts.Viewport
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxViews == 0 {
		opts.MaxViews = DefaultMaxViews
	}

	return &Manager{
		views:    make(map[string]*View),
		headless: opts.Headless,
		viewport: viewport,
		timeout:  opts.Timeout,
		maxViews: opts.MaxViews,
	}
}

// Initialize installs and starts the Playwright runtime. Calling it early
// surfaces install problems before the first view is needed; otherwise
// OpenView initializes on demand.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initLocked()
}

func (m *Manager) initLocked() error {
	if m.initialized {
		return nil
	}

	// Install and run Playwright with verbose=false and discard output to avoid interfering with TUI
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	err := playwright.Install(opts)
	if err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// OpenView launches a view on the given URL. Navigation is started in the
// background and never awaited; the view counts as opened as soon as its
// page exists.
func (m *Manager) OpenView(ctx context.Context, rawURL string) (session.ViewInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return session.ViewInfo{}, err
	}

	// Check view limit
	if len(m.views) >= m.maxViews {
		return session.ViewInfo{}, fmt.Errorf("maximum number of views (%d) reached", m.maxViews)
	}

	if err := m.initLocked(); err != nil {
		return session.ViewInfo{}, err
	}

	// Launch browser
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &m.headless,
	}
	browser, err := m.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return session.ViewInfo{}, fmt.Errorf("failed to launch browser: %w", err)
	}

	// Create context
	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.viewport.Width,
			Height: m.viewport.Height,
		},
	}
	browserCtx, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return session.ViewInfo{}, fmt.Errorf("failed to create context: %w", err)
	}

	// Create page
	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		return session.ViewInfo{}, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(m.timeout)

	view := &View{
		ID:           uuid.NewString(),
		Browser:      browser,
		Context:      browserCtx,
		Page:         page,
		RequestedURL: rawURL,
		OpenedAt:     time.Now(),
	}

	m.views[view.ID] = view
	m.order = append(m.order, view.ID)

	// Fire and forget: the server may never answer or may answer slowly,
	// and the caller must not wait for it either way.
	go func() {
		_, _ = page.Goto(rawURL)
	}()

	return session.ViewInfo{ID: view.ID, URL: view.RequestedURL}, nil
}

// ListViews returns every open view in opening order.
func (m *Manager) ListViews(ctx context.Context) ([]session.ViewInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos := make([]session.ViewInfo, 0, len(m.views))
	for _, id := range m.order {
		view, exists := m.views[id]
		if !exists {
			continue
		}
		infos = append(infos, session.ViewInfo{ID: view.ID, URL: view.RequestedURL})
	}

	return infos, nil
}

// CloseView closes and removes a view.
func (m *Manager) CloseView(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	view, exists := m.views[id]
	if !exists {
		return fmt.Errorf("view %q not found", id)
	}

	m.closeViewLocked(view)
	delete(m.views, id)
	m.order = removeID(m.order, id)
	return nil
}

func (m *Manager) closeViewLocked(view *View) {
	// Ignore errors, continue cleanup
	if view.Page != nil {
		_ = view.Page.Close()
	}
	if view.Context != nil {
		_ = view.Context.Close()
	}
	if view.Browser != nil {
		_ = view.Browser.Close()
	}
}

// ViewCount returns the number of open views.
func (m *Manager) ViewCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views)
}

// HasViews returns true if any view is open.
func (m *Manager) HasViews() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views) > 0
}

// CloseAll closes every open view.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, view := range m.views {
		m.closeViewLocked(view)
		delete(m.views, id)
	}
	m.order = nil
	return nil
}

// Shutdown closes all views and stops the Playwright runtime.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, view := range m.views {
		m.closeViewLocked(view)
		delete(m.views, id)
	}
	m.order = nil

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}

	return nil
}

// SetMaxViews sets the maximum number of concurrently open views.
func (m *Manager) SetMaxViews(max int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxViews = max
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
