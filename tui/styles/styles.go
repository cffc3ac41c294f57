// Package styles provides Lipgloss styles for the TUI using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is the bar and panel background
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple marks the selected row and focused fields
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is used for panel titles and errors
	Pink = lipgloss.Color("#D33061")
	// Cyan is used for timestamps and info messages
	Cyan = lipgloss.Color("#3097C6")
	// Amber is used for player state labels
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages
	Green = lipgloss.Color("#A6A75D")
)

// Bar is the style for full-width single-line bars
var Bar = lipgloss.NewStyle().
	Background(DarkPurple).
	Foreground(LightLavender)

// Highlight is the style for the selected note row
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for labels and hints
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Placeholder is the style for empty-state text
var Placeholder = lipgloss.NewStyle().
	Foreground(Purple).
	Italic(true)

// Timestamp is the style for encoded timecodes
var Timestamp = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true)

// StateLabel is the style for the player state in the status bar
var StateLabel = lipgloss.NewStyle().
	Foreground(Amber).
	Bold(true)

// Warning is the style for error messages
var Warning = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
