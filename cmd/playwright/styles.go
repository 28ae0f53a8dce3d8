package main

import "github.com/charmbracelet/lipgloss"

// Color palette for command output.
var (
	mintGreen = lipgloss.Color("#A8E6CF") // device and browser names
	mutedGray = lipgloss.Color("#6B7280") // secondary detail text
	softCoral = lipgloss.Color("#FFB3BA") // headings
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(softCoral).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	detailStyle = lipgloss.NewStyle().
			Foreground(mutedGray)
)
