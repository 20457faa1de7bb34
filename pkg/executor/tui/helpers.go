package tui

// displayURL shortens a URL for dialog titles and toasts. Long URLs keep
// their start and end with an ellipsis in the middle, so both the host and
// the final path segment stay readable.
func displayURL(rawURL string, maxLen int) string {
	runes := []rune(rawURL)
	if maxLen <= 0 || len(runes) <= maxLen {
		return rawURL
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	head := (maxLen - 1) / 2
	tail := maxLen - 1 - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
