// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     tui
// Description: Colors and styles shared by the mpcalc screens
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package tui

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

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	ResultStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	KindStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	FlagStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// DisableStyles replaces every style with a plain one
func DisableStyles() {
	plain := lipgloss.NewStyle()
	TitleStyle = plain
	BoxStyle = plain
	PromptStyle = plain
	ResultStyle = plain
	KindStyle = plain
	FlagStyle = plain
	ErrorStyle = plain
	StatusBarStyle = plain
	HelpStyle = plain
}
