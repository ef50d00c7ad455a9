package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/churchcal/calrepo/sanctorale"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

var colourStyles = map[sanctorale.Colour]lipgloss.Style{
	sanctorale.ColourWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")),
	sanctorale.ColourRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
	sanctorale.ColourGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	sanctorale.ColourViolet: lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
	sanctorale.ColourRose:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F472B6")),
	sanctorale.ColourBlack:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
}

func colourStyle(c sanctorale.Colour) lipgloss.Style {
	if s, ok := colourStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
