package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickauthhq/quickauth/pkg/executor/tui/types"
)

// ConfirmOverlay is a yes/no confirmation dialog.
type ConfirmOverlay struct {
	width   int
	height  int
	focused bool

	title   string
	message string
	details []string

	onYes func()
	onNo  func()
}

// NewConfirmOverlay creates a confirmation dialog.
func NewConfirmOverlay(title, message string, details []string, onYes, onNo func()) *ConfirmOverlay {
	return &ConfirmOverlay{
		focused: true,
		title:   title,
		message: message,
		details: details,
		onYes:   onYes,
		onNo:    onNo,
	}
}

// Update handles messages for the confirmation dialog
func (c *ConfirmOverlay) Update(msg tea.Msg, state types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if c.onYes != nil {
			c.onYes()
		}
		return nil, nil

	case "n", "N", keyEsc, keyCtrlC:
		if c.onNo != nil {
			c.onNo()
		}
		return nil, nil
	}

	return c, nil
}

// View renders the confirmation dialog
func (c *ConfirmOverlay) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(types.SalmonPink).
		Bold(true)
	content.WriteString(titleStyle.Render(c.title))
	content.WriteString("\n\n")

	messageStyle := lipgloss.NewStyle().Foreground(types.BrightWhite)
	content.WriteString(messageStyle.Render(c.message))
	content.WriteString("\n\n")

	detailStyle := lipgloss.NewStyle().Foreground(types.MutedGray)
	for _, detail := range c.details {
		content.WriteString(detailStyle.Render(detail))
		content.WriteString("\n")
	}

	content.WriteString("\n")

	buttonStyle := lipgloss.NewStyle().Foreground(types.MutedGray)
	content.WriteString(buttonStyle.Render("[y] Yes    [n] No"))

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(types.SalmonPink).
		Background(types.DarkBg).
		Padding(1, 2).
		Width(60)

	return dialogStyle.Render(content.String())
}

// Width returns the overlay width
func (c *ConfirmOverlay) Width() int {
	return c.width
}

// Height returns the overlay height
func (c *ConfirmOverlay) Height() int {
	return c.height
}

// SetDimensions updates the overlay dimensions
func (c *ConfirmOverlay) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Focused returns whether the overlay should handle input
func (c *ConfirmOverlay) Focused() bool {
	return c.focused
}

// SetFocused sets the focus state
func (c *ConfirmOverlay) SetFocused(focused bool) {
	c.focused = focused
}
