// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
//
// Package:     catalog
// Description: Styles for the voice catalog TUI
// Author:      Mike Stoffels with Claude
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package catalog

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	FilterStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	SyntheticStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Background(ColorBgPanel).
			Padding(0, 1)
)
