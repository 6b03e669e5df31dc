package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// BgStyle renders text segments on a shared background color. lipgloss
// resets between styled segments, which otherwise leaves gaps in the
// background: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with a style so every character, spaces included,
// carries the background color.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	if !strings.Contains(text, " ") {
		return style.Background(b.bg).Render(text)
	}

	wordStyle := style.Background(b.bg)
	words := strings.Split(text, " ")
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, wordStyle.Render(w))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, b.space)
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}

// fade mixes fg toward bg. Opacity 1 is fg unchanged, 0 is bg. Colors that
// do not parse as hex are returned as is.
func fade(fg, bg string, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return lipgloss.Color(fg)
	}
	f, err := colorful.Hex(fg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	if opacity < 0 {
		opacity = 0
	}
	return lipgloss.Color(b.BlendRgb(f, opacity).Hex())
}
