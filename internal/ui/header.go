package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bsj5/profilecard/internal/lanyard"
)

// renderHeader renders the one-line status bar.
func (m Model) renderHeader(now time.Time) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles()

	status := m.snapshot.Status()
	dot := bg.Render("●", lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(status))))
	left := bg.Render("profilecard", styles.Logo) + bg.Spaces(2) + dot + bg.Spaces(1) +
		bg.Render(status.Label(), styles.MutedText)

	right := m.headerState(now, bg)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := bg.Spaces(1) + left + bg.Spaces(gap) + right + bg.Spaces(1)
	return bg.FillLine(line, m.width)
}

// headerState describes fetch health on the right side of the header.
func (m Model) headerState(now time.Time, bg BgStyle) string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if m.flash != "" && now.Before(m.flashUntil) {
		return bg.Render(m.flash, styles.InfoText)
	}

	switch {
	case snap.IsOffline():
		text := "offline · retrying"
		if m.pollInterval > 0 {
			text = fmt.Sprintf("offline · retrying every %s", m.pollInterval)
		}
		return bg.Render(text, styles.DangerText)

	case snap.LastError != nil:
		return bg.Render(describeFetchError(snap.LastError)+" · retrying", styles.WarningText)

	case snap.Polls == 0 && !m.hasDocument:
		return bg.Render(m.spinner.View(), styles.AccentText) + bg.Spaces(1) +
			bg.Render("connecting", styles.MutedText)

	case !snap.LastSuccess.IsZero():
		return bg.Render("updated "+formatAge(now.Sub(snap.LastSuccess)), styles.FaintText)
	}
	return ""
}

// describeFetchError turns a fetch error into a short header label.
func describeFetchError(err error) string {
	switch {
	case errors.Is(err, lanyard.ErrNoUser):
		return "no user id configured"
	case errors.Is(err, lanyard.ErrNetwork):
		return "presence API unreachable"
	case errors.Is(err, lanyard.ErrParse):
		return "unexpected API response"
	default:
		return "presence fetch failed"
	}
}
