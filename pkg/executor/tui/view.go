package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quickauthhq/quickauth/pkg/config"
)

// View renders the entire TUI interface.
// This is called by Bubble Tea whenever the UI needs to be redrawn.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Build header and status sections
	header := m.buildHeader()
	tips := m.buildTips()
	topStatus := m.buildTopStatus()
	activityLine := m.buildActivityLine()
	bottomBar := m.buildBottomBar()

	// Build viewport section
	viewportSection := m.viewport.View()

	// Assemble the base UI
	baseView := m.assembleBaseView(header, tips, topStatus, viewportSection, activityLine, bottomBar)

	// Layer overlays
	return m.applyOverlays(baseView)
}

// buildHeader renders the QuickAuth ASCII art header
func (m *model) buildHeader() string {
	if m.header != "" {
		return headerStyle.Render("\n" + m.header)
	}
	return headerStyle.Render(`
	 ██████╗ ██╗   ██╗██╗ ██████╗██╗  ██╗ █████╗ ██╗   ██╗████████╗██╗  ██╗
	██╔═══██╗██║   ██║██║██╔════╝██║ ██╔╝██╔══██╗██║   ██║╚══██╔══╝██║  ██║
	██║   ██║██║   ██║██║██║     █████╔╝ ███████║██║   ██║   ██║   ███████║
	██║▄▄ ██║██║   ██║██║██║     ██╔═██╗ ██╔══██║██║   ██║   ██║   ██╔══██║
	╚██████╔╝╚██████╔╝██║╚██████╗██║  ██╗██║  ██║╚██████╔╝   ██║   ██║  ██║
	 ╚══▀▀═╝  ╚═════╝ ╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝    ╚═╝   ╚═╝  ╚═╝`)
}

// buildTips renders usage tips
func (m *model) buildTips() string {
	return tipsStyle.Render(`  Tips: Enter to authorize • a to add a server • e to edit • d to delete • c to copy URL • r to reload config • ? for help • q to quit`)
}

// buildTopStatus renders the registry location status bar
func (m *model) buildTopStatus() string {
	if !config.IsInitialized() {
		return errorStyle.Render(" Registry: not initialized")
	}

	location := config.Path()
	if location == "" {
		location = "in-memory"
	}
	return statusBarStyle.Render(fmt.Sprintf(" Registry: %s", location))
}

// buildActivityLine renders the spinner while dismissal polls are running
func (m *model) buildActivityLine() string {
	if m.pollsActive == 0 {
		return ""
	}

	message := m.statusLine
	if message == "" {
		message = "waiting for helper views to appear..."
	}

	activityMsg := fmt.Sprintf("%s %s", m.spinner.View(), message)
	return activityStyle.Width(m.width - 4).Padding(0, 2).Render(activityMsg)
}

// buildServerList renders the registry entries for the viewport
func (m *model) buildServerList() string {
	if len(m.servers) == 0 {
		return emptyListStyle.Render("\n  No servers registered. Press 'a' to add one.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, server := range m.servers {
		index := serverIndexStyle.Render(fmt.Sprintf("%3d.", i+1))
		if i == m.selected {
			b.WriteString(fmt.Sprintf("  %s %s\n", index, selectedServerStyle.Render("➜ "+server)))
		} else {
			b.WriteString(fmt.Sprintf("  %s   %s\n", index, serverStyle.Render(server)))
		}
	}
	return b.String()
}

// buildBottomBar renders the bottom status bar with session statistics
func (m *model) buildBottomBar() string {
	bottomLeft := "~/quickauth"
	bottomCenter := "Enter to authorize • ↑/↓ to select"
	bottomRight := m.buildStatsDisplay()

	totalUsed := len(bottomLeft) + len(bottomCenter) + len(bottomRight)
	leftPadding := (m.width - totalUsed) / 3
	rightPadding := m.width - totalUsed - leftPadding*2
	if leftPadding < 2 {
		leftPadding = 2
	}
	if rightPadding < 2 {
		rightPadding = 2
	}

	return statusBarStyle.Width(m.width).Render(
		bottomLeft +
			strings.Repeat(" ", leftPadding) +
			bottomCenter +
			strings.Repeat(" ", rightPadding) +
			bottomRight,
	)
}

// buildStatsDisplay renders the session counters
func (m *model) buildStatsDisplay() string {
	if m.sessionsOpened == 0 && m.pollsActive == 0 {
		return "QuickAuth"
	}

	return fmt.Sprintf("◆ Servers: %d | Sessions: %d | Polling: %d",
		len(m.servers),
		m.sessionsOpened,
		m.pollsActive)
}

// assembleBaseView combines all UI components into the base view
func (m *model) assembleBaseView(header, tips, topStatus, viewportSection, activityLine, bottomBar string) string {
	if m.pollsActive > 0 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			tips,
			topStatus,
			"",
			viewportSection,
			activityLine,
			bottomBar,
		)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tips,
		topStatus,
		"",
		viewportSection,
		bottomBar,
	)
}

// applyOverlays layers all active overlays on top of the base view
func (m *model) applyOverlays(baseView string) string {
	if m.overlay.isActive() {
		baseView = renderOverlay(baseView, m.overlay.overlay, m.width, m.height)
	}

	// Add toast notification as overlay if active and not expired
	if m.toast.active && time.Now().Before(m.toast.showUntil) {
		toastContent := m.renderToast()
		baseView = renderToastOverlay(baseView, toastContent)
	}

	return baseView
}

// renderToast renders a toast notification
func (m *model) renderToast() string {
	if !m.toast.active || time.Now().After(m.toast.showUntil) {
		return ""
	}

	// Create box with border
	boxWidth := m.width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	var content strings.Builder

	// Icon and message
	header := fmt.Sprintf("%s %s", m.toast.icon, m.toast.message)
	content.WriteString(header)
	content.WriteString("\n")

	// Details
	if m.toast.details != "" {
		content.WriteString(m.toast.details)
	}

	// Create styled box
	borderColor := salmonPink
	if m.toast.isError {
		borderColor = lipgloss.Color("203") // Red color for errors
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(boxWidth)

	return "\n" + boxStyle.Render(content.String()) + "\n"
}
