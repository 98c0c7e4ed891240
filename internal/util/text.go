// Package util holds small terminal text helpers shared by the TUI and
// CLI output.
package util

import "fmt"

// MakeHyperlink wraps display text in an OSC 8 terminal hyperlink, so the
// URL is clickable without being printed. BEL terminators for wider
// terminal compatibility.
func MakeHyperlink(url, displayText string) string {
	return fmt.Sprintf("\033]8;;%s\a%s\033]8;;\a", url, displayText)
}

// TruncateText shortens s to maxLen runes, with a trailing "…" when it
// had to cut. maxLen <= 0 disables truncation.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}
