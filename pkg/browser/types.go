package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// View represents an open helper view with its associated resources.
type View struct {
	// ID is the unique identifier for this view
	ID string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated profile)
	Context playwright.BrowserContext

	// Page is the view's page
	Page playwright.Page

	// RequestedURL is the URL the view was asked to display. Chromium
	// strips embedded credentials from the URL it reports back, so this
	// is what dismissal matching compares against.
	RequestedURL string

	// OpenedAt is the timestamp when the view was opened
	OpenedAt time.Time
}

// Options configures a view host.
type Options struct {
	// Headless controls whether views run without a visible window
	Headless bool

	// Viewport sets the initial viewport size for new views
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64

	// MaxViews caps the number of concurrently open views
	MaxViews int
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for view hosting
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxViews       = 5
)
