package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bsj5/profilecard/internal/logtail"
)

type logLinesMsg []string

type logErrorMsg struct {
	err error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLinesMsg(nil)
		}
		lines, err := logtail.Read(path, LogTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logLinesMsg(lines)
	}
}

// handleLogsKey processes keyboard input while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil

	case key.Matches(msg, m.keys.Follow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
			return m, loadLogsCmd(m.logPath)
		}
		return m, nil
	}

	// Scrolling stops following.
	var cmd tea.Cmd
	before := m.logViewport.YOffset
	m.logViewport, cmd = m.logViewport.Update(msg)
	if m.logViewport.YOffset < before {
		m.logFollow = false
	}
	return m, cmd
}

func (m Model) logWidth() int {
	return max(m.width-4, 10)
}

func (m Model) logHeight() int {
	return max(m.height-4, 3)
}

// updateLogViewport re-renders the log lines into the viewport.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = m.logWidth()
	m.logViewport.Height = m.logHeight()
	m.logViewport.SetContent(m.renderLogContent())
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if len(m.logLines) == 0 {
		return styles.FaintText.Render("log is empty")
	}
	out := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		out = append(out, m.colorizeLogLine(logtail.Parse(line)))
	}
	return strings.Join(out, "\n")
}

// colorizeLogLine colors the columns of one parsed log line.
func (m Model) colorizeLogLine(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Level == logtail.LevelNone {
		return styles.Text.Render(e.Message)
	}

	var level lipgloss.Style
	var label string
	switch e.Level {
	case logtail.LevelDebug:
		level, label = styles.FaintText, "DEBUG"
	case logtail.LevelInfo:
		level, label = styles.InfoText, "INFO "
	case logtail.LevelWarn:
		level, label = styles.WarningText, "WARN "
	default:
		level, label = styles.DangerText, "ERROR"
	}

	parts := []string{
		styles.FaintText.Render(e.Time),
		level.Bold(true).Render(label),
	}
	if e.Prefix != "" {
		parts = append(parts, styles.AccentText.Render(e.Prefix+":"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	return strings.Join(parts, " ")
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	follow := "paused"
	if m.logFollow {
		follow = "following"
	}
	title := styles.Text.Bold(true).Render("Log") + "  " +
		styles.FaintText.Render(truncate(m.logPath, m.logWidth()-20)) + "  " +
		styles.MutedText.Render(follow)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(m.logWidth()).
		Render(m.logViewport.View())

	hint := styles.FaintText.Render("esc close · space follow · j/k scroll")
	return lipgloss.JoinVertical(lipgloss.Left, title, box, hint)
}
