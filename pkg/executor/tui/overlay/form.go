package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickauthhq/quickauth/pkg/executor/tui/types"
)

// FieldType defines the type of input field
type FieldType int

const (
	// FieldTypeText is a plain text input
	FieldTypeText FieldType = iota
	// FieldTypePassword masks its value while typing
	FieldTypePassword
)

// Field represents a single input field in a form overlay
type Field struct {
	Label     string
	Key       string
	Value     string
	Type      FieldType
	MaxLength int
	Validator func(string) error

	errorMsg string
}

// InputOverlay is a modal form with one or more text fields. Enter validates
// every field and hands the values to the confirm callback; the form stays
// open while anything is invalid.
type InputOverlay struct {
	width   int
	height  int
	focused bool

	title         string
	fields        []Field
	selectedField int
	cursorBlink   bool

	onConfirm func(values map[string]string) error
	onCancel  func()
}

// NewInputOverlay creates a form overlay with the given fields.
func NewInputOverlay(title string, fields []Field, onConfirm func(values map[string]string) error, onCancel func()) *InputOverlay {
	return &InputOverlay{
		focused:     true,
		title:       title,
		fields:      fields,
		cursorBlink: true,
		onConfirm:   onConfirm,
		onCancel:    onCancel,
	}
}

// cursorBlinkMsg is sent periodically to toggle cursor visibility
type cursorBlinkMsg struct{}

// TickCursorBlink returns the command that drives the form cursor blink.
// The caller starts it when activating an input overlay.
func TickCursorBlink() tea.Cmd {
	return tea.Tick(time.Millisecond*530, func(t time.Time) tea.Msg {
		return cursorBlinkMsg{}
	})
}

// Update handles messages for the form overlay
func (f *InputOverlay) Update(msg tea.Msg, state types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	if _, ok := msg.(cursorBlinkMsg); ok {
		f.cursorBlink = !f.cursorBlink
		return f, TickCursorBlink()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch keyMsg.String() {
	case keyEsc, keyCtrlC:
		if f.onCancel != nil {
			f.onCancel()
		}
		return nil, nil
	case keyEnter:
		return f.handleConfirm()
	case keyTab, "down":
		f.moveToNextField()
	case "shift+tab", "up":
		f.moveToPrevField()
	case " ":
		f.appendToField(" ")
	case "backspace":
		f.handleBackspace()
	case "ctrl+u":
		f.handleClear()
	default:
		if len(keyMsg.String()) == 1 {
			f.appendToField(keyMsg.String())
		}
	}

	return f, nil
}

// handleConfirm validates all fields and runs the confirm callback
func (f *InputOverlay) handleConfirm() (types.Overlay, tea.Cmd) {
	values := make(map[string]string)

	for i := range f.fields {
		field := &f.fields[i]
		values[field.Key] = field.Value

		if field.Validator != nil {
			if err := field.Validator(field.Value); err != nil {
				field.errorMsg = err.Error()
				f.selectedField = i
				return f, nil
			}
		}
	}

	if f.onConfirm != nil {
		if err := f.onConfirm(values); err != nil {
			f.fields[f.selectedField].errorMsg = err.Error()
			return f, nil
		}
	}

	return nil, nil
}

// moveToNextField moves to the next field, wrapping around
func (f *InputOverlay) moveToNextField() {
	f.selectedField++
	if f.selectedField >= len(f.fields) {
		f.selectedField = 0
	}
}

// moveToPrevField moves to the previous field, wrapping around
func (f *InputOverlay) moveToPrevField() {
	f.selectedField--
	if f.selectedField < 0 {
		f.selectedField = len(f.fields) - 1
	}
}

// appendToField appends text to the selected field
func (f *InputOverlay) appendToField(s string) {
	field := &f.fields[f.selectedField]
	if field.MaxLength == 0 || len(field.Value) < field.MaxLength {
		field.Value += s
		field.errorMsg = ""
	}
}

// handleBackspace removes the last character from the selected field
func (f *InputOverlay) handleBackspace() {
	field := &f.fields[f.selectedField]
	// Use rune-based slicing to properly handle multi-byte UTF-8 characters
	runes := []rune(field.Value)
	if len(runes) > 0 {
		field.Value = string(runes[:len(runes)-1])
		field.errorMsg = ""
	}
}

// handleClear clears the selected field value
func (f *InputOverlay) handleClear() {
	field := &f.fields[f.selectedField]
	field.Value = ""
	field.errorMsg = ""
}

// View renders the form overlay
//
//nolint:gocyclo // UI dialog rendering has inherent complexity
func (f *InputOverlay) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(types.SalmonPink).
		Bold(true)
	content.WriteString(titleStyle.Render(f.title))
	content.WriteString("\n\n")

	for i, field := range f.fields {
		isSelected := i == f.selectedField

		labelStyle := lipgloss.NewStyle().Foreground(types.BrightWhite)
		content.WriteString(labelStyle.Render(field.Label))
		content.WriteString("\n")

		const fieldWidth = 60

		fieldStyle := lipgloss.NewStyle().
			Foreground(types.BrightWhite).
			Background(types.DarkBg).
			Padding(0, 1).
			Width(fieldWidth)

		if isSelected {
			fieldStyle = fieldStyle.Border(lipgloss.RoundedBorder()).
				BorderForeground(types.SalmonPink)
		}

		// Mask password fields
		value := field.Value
		if field.Type == FieldTypePassword && value != "" {
			value = strings.Repeat("•", len([]rune(value)))
		}
		if isSelected {
			// Blinking cursor
			if f.cursorBlink {
				value += "▸"
			} else {
				value += " " // Space maintains field width when cursor is hidden
			}
		}

		// Truncate from the left if value is too long (show end of string)
		// Use rune-based slicing to avoid splitting multi-byte UTF-8 characters
		maxDisplayLen := fieldWidth - 2
		runes := []rune(value)
		if len(runes) > maxDisplayLen {
			value = string(runes[len(runes)-maxDisplayLen:])
		}

		content.WriteString(fieldStyle.Render(value))
		content.WriteString("\n")

		// Error message or character count
		if field.errorMsg != "" {
			errMsgStyle := lipgloss.NewStyle().Foreground(types.SalmonPink)
			content.WriteString(errMsgStyle.Render(field.errorMsg))
			content.WriteString("\n")
		} else if field.MaxLength > 0 {
			countStyle := lipgloss.NewStyle().Foreground(types.MutedGray)
			count := fmt.Sprintf("[%d/%d]", len(field.Value), field.MaxLength)
			content.WriteString(countStyle.Render(count))
			content.WriteString("\n")
		}

		content.WriteString("\n")
	}

	buttonStyle := lipgloss.NewStyle().Foreground(types.MutedGray)
	content.WriteString(buttonStyle.Render("[Enter to Confirm] [Esc to Cancel]"))

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(types.SalmonPink).
		Background(types.DarkBg).
		Padding(1, 2)

	return dialogStyle.Render(content.String())
}

// FieldValue returns the current value of the field with the given key.
func (f *InputOverlay) FieldValue(key string) string {
	for _, field := range f.fields {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// Width returns the overlay width
func (f *InputOverlay) Width() int {
	return f.width
}

// Height returns the overlay height
func (f *InputOverlay) Height() int {
	return f.height
}

// SetDimensions updates the overlay dimensions
func (f *InputOverlay) SetDimensions(width, height int) {
	f.width = width
	f.height = height
}

// Focused returns whether the overlay should handle input
func (f *InputOverlay) Focused() bool {
	return f.focused
}

// SetFocused sets the focus state
func (f *InputOverlay) SetFocused(focused bool) {
	f.focused = focused
}
