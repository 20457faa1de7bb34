package types

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Overlay is the interface implemented by all modal overlays.
// Overlays receive messages while active and render on top of the base view.
type Overlay interface {
	// Update handles a message. Returning a nil Overlay signals that the
	// overlay should close.
	Update(msg tea.Msg, state StateProvider, actions ActionHandler) (Overlay, tea.Cmd)

	// View renders the overlay content
	View() string

	// Width returns the overlay width
	Width() int

	// Height returns the overlay height
	Height() int

	// SetDimensions updates the overlay dimensions
	SetDimensions(width, height int)

	// Focused returns whether the overlay should handle input
	Focused() bool

	// SetFocused sets the focus state
	SetFocused(focused bool)
}

// StateProvider gives overlays read access to application state.
type StateProvider interface {
	// Servers returns the registered server URLs in display order
	Servers() []string
}

// ActionHandler lets overlays trigger application-level actions.
type ActionHandler interface {
	// SetOverlay activates an overlay
	SetOverlay(mode OverlayMode, overlay Overlay)

	// ClearOverlay closes the current overlay
	ClearOverlay()

	// ShowToast displays a temporary notification
	ShowToast(message, details, icon string, isError bool)

	// Quit requests application exit
	Quit()
}
