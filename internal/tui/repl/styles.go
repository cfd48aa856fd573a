// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     repl
// Description: Lipgloss styles for the interactive front-end REPL
// Author:      msto63
// Created:     2025-02-22
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles groups every style the REPL renders with
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Prompt    lipgloss.Style
	Output    lipgloss.Style
	Error     lipgloss.Style
	Position  lipgloss.Style
	Kind      lipgloss.Style
	StatusBar lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Box       lipgloss.Style
	Input     lipgloss.Style
}

// DefaultStyles returns the colored REPL styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		Subtitle: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),

		Prompt: lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true),

		Output: lipgloss.NewStyle().
			Foreground(colorFg),

		Error: lipgloss.NewStyle().
			Foreground(colorError),

		Position: lipgloss.NewStyle().
			Foreground(colorMuted),

		Kind: lipgloss.NewStyle().
			Foreground(colorAccent),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorPrimary).
			Bold(true).
			Underline(true),

		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorMuted),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
	}
}

// PlainStyles returns styles without colors, keeping the layout
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain.Bold(true),
		Subtitle:  plain,
		Prompt:    plain,
		Output:    plain,
		Error:     plain,
		Position:  plain,
		Kind:      plain,
		StatusBar: plain.Padding(0, 1),
		ActiveTab: plain.Padding(0, 2).Underline(true),
		Tab:       plain.Padding(0, 2),
		Box:       plain.Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Input:     plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}
