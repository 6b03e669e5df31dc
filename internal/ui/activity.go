package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bsj5/profilecard/internal/activity"
	"github.com/bsj5/profilecard/internal/reconcile"
)

// renderActivity renders every mounted activity element at its current
// animated style.
func (m Model) renderActivity(now time.Time) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Bold(true).Render("ACTIVITY"))

	elements := m.panel.Elements()
	if len(elements) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(m.idleText()))
		return lipgloss.NewStyle().Width(CardWidth).PaddingTop(1).Render(b.String())
	}
	for _, el := range elements {
		b.WriteString("\n")
		b.WriteString(m.renderElement(el.Content, el.StyleAt(now)))
	}
	return lipgloss.NewStyle().Width(CardWidth).PaddingTop(1).Render(b.String())
}

func (m Model) idleText() string {
	switch {
	case !m.hasDocument:
		return "waiting for presence..."
	case !m.document.Success:
		return "presence unavailable"
	default:
		return "not listening to anything"
	}
}

// renderElement draws one card. Opacity fades colors toward the background,
// DX shifts the block horizontally, DY eats into the gap above it and a
// scale below one narrows and un-bolds the block.
func (m Model) renderElement(card activity.Card, st reconcile.Style) string {
	bg := m.theme.Background
	fg := func(c string) lipgloss.Color { return fade(c, bg, st.Opacity) }

	width := int(math.Round(float64(CardWidth-activityIndent-2) * st.Scale))
	width = max(width, 10)

	lines := []string{
		lipgloss.NewStyle().Foreground(fg(m.theme.Success)).Render("♫ Listening to " + card.Source),
		lipgloss.NewStyle().Foreground(fg(m.theme.Text)).Bold(st.Scale >= 1).Render(truncate(card.Title, width)),
		lipgloss.NewStyle().Foreground(fg(m.theme.Muted)).Render(truncate("by "+card.Subtitle, width)),
	}
	if m.showLinks {
		for _, link := range []string{card.TrackURL, card.ArtURL} {
			if link == "" {
				continue
			}
			lines = append(lines, lipgloss.NewStyle().Foreground(fg(m.theme.Faint)).Render(truncate(link, width)))
		}
	}

	block := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(fg(m.theme.Success)).
		PaddingLeft(1).
		Width(width).
		Render(strings.Join(lines, "\n"))

	indent := max(0, activityIndent+int(math.Round(st.DX)))
	top := max(0, activityGap+int(math.Round(st.DY)))
	return lipgloss.NewStyle().MarginLeft(indent).MarginTop(top).Render(block)
}
