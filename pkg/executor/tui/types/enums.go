package types

// OverlayMode represents the current overlay state
type OverlayMode int

const (
	// OverlayModeNone indicates no overlay is active
	OverlayModeNone OverlayMode = iota
	// OverlayModeServerForm shows the add/edit server dialog
	OverlayModeServerForm
	// OverlayModeCredentials shows the username/password dialog
	OverlayModeCredentials
	// OverlayModeConfirm shows a yes/no confirmation dialog
	OverlayModeConfirm
	// OverlayModeHelp shows the help overlay
	OverlayModeHelp
)
