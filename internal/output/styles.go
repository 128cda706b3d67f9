package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: component IDs, versions, boundaries.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "successful" package status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "pending" and "unfinished" statuses.
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed is used for the "faulty" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// colorBlue is used for table headers.
	colorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Package and plan status words.
const (
	StatusSuccessful = "successful"
	StatusFaulty     = "faulty"
	StatusUnfinished = "unfinished"
	StatusPending    = "pending"
	StatusSkipped    = "skipped"
)

// statusStyle returns the lipgloss style for a status word.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case StatusSuccessful:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusUnfinished, StatusPending:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFaulty:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// RenderStatus renders a status word in its color.
func RenderStatus(status string) string {
	return statusStyle(status).Render(status)
}

// minScopeColumnWidth is the width the "<component>: <scope>" column is padded
// to so status words line up.
const minScopeColumnWidth = 40

// FormatPackageLine renders a patch with a right-aligned, color-coded status:
//
//	c:<component>: <version or boundary>   <status>
func FormatPackageLine(component, scope, status string) string {
	path := component + ": " + scope

	padding := minScopeColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("c:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + RenderStatus(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}
