package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderProfile renders the static half of the card: name, Discord identity,
// bio and socials.
func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	inner := CardWidth - 6 // border and padding

	var b strings.Builder

	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.StatusColor(m.snapshot.Status()))).
		Render("●")
	b.WriteString(styles.Text.Bold(true).Render(m.profile.Name))
	b.WriteString(" ")
	b.WriteString(dot)
	b.WriteString("\n")

	if m.hasDocument {
		user := m.document.Data.DiscordUser
		ident := user.DisplayName()
		if user.Username != "" && user.Username != ident {
			ident += " (@" + user.Username + ")"
		}
		if ident != "" {
			b.WriteString(styles.MutedText.Render("discord: " + truncate(ident, inner-9)))
			b.WriteString("\n")
		}
	}

	if bio := strings.TrimSpace(m.profile.Bio); bio != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(inner).Render(bio))
		b.WriteString("\n")
	}

	if len(m.profile.Socials) > 0 {
		b.WriteString("\n")
		nameWidth := 0
		for _, s := range m.profile.Socials {
			nameWidth = max(nameWidth, lipgloss.Width(s.Name))
		}
		for _, s := range m.profile.Socials {
			name := styles.AccentText.Width(nameWidth + 2).Render(s.Name)
			b.WriteString(name)
			b.WriteString(styles.Text.Render(truncate(s.Handle, inner-nameWidth-2)))
			b.WriteString("\n")
			if m.showLinks {
				b.WriteString(styles.FaintText.Render(strings.Repeat(" ", nameWidth+2) + truncate(s.URL, inner-nameWidth-2)))
				b.WriteString("\n")
			}
		}
	}

	if m.showLinks && m.hasDocument {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("avatar " + truncate(m.document.AvatarURL(), inner-7)))
		b.WriteString("\n")
	}

	return styles.Card.
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(CardWidth - 2).
		Render(strings.TrimRight(b.String(), "\n"))
}
