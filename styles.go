package main

import lipgloss "github.com/charmbracelet/lipgloss"

var (
	colorText   = lipgloss.AdaptiveColor{Dark: "#e6edf3", Light: "#1f2328"}
	colorSubtle = lipgloss.AdaptiveColor{Dark: "#8b949e", Light: "#656d76"}
	colorAccent = lipgloss.AdaptiveColor{Dark: "#58a6ff", Light: "#0969da"}
	colorGreen  = lipgloss.AdaptiveColor{Dark: "#3fb950", Light: "#1a7f37"}
	colorYellow = lipgloss.AdaptiveColor{Dark: "#d29922", Light: "#9a6700"}
)

var (
	styleTitle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleLabel  = lipgloss.NewStyle().Foreground(colorSubtle)
	styleValue  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	styleOption = lipgloss.NewStyle().Foreground(colorGreen)
	styleHint   = lipgloss.NewStyle().Foreground(colorYellow)
)
