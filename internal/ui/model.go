package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bsj5/profilecard/internal/activity"
	"github.com/bsj5/profilecard/internal/config"
	"github.com/bsj5/profilecard/internal/lanyard"
	"github.com/bsj5/profilecard/internal/prefs"
	"github.com/bsj5/profilecard/internal/reconcile"
	"github.com/bsj5/profilecard/internal/state"
)

// Options configures the UI.
type Options struct {
	Store        *state.Store
	Profile      config.Profile
	PollInterval time.Duration
	ThemeName    string
	ShowLinks    bool
	PrefsPath    string
	LogPath      string
	Logger       *log.Logger

	// Refresh asks the poller for an out-of-schedule fetch and reports
	// whether it was accepted.
	Refresh func() bool

	// OpenURL defaults to OpenBrowser.
	OpenURL func(string) error

	// Timing of the activity list transitions; zero uses the defaults.
	Timing reconcile.Timing

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store        *state.Store
	prefsPath    string
	logPath      string
	pollInterval time.Duration
	logger       *log.Logger
	refresh      func() bool
	openURL      func(string) error
	now          func() time.Time
	keys         keyMap

	// UI state
	theme     Theme
	showLinks bool
	width     int
	height    int
	ready     bool
	spinner   spinner.Model

	// Data state
	profile     config.Profile
	document    lanyard.Document
	hasDocument bool
	snapshot    state.Snapshot
	panel       *activity.Panel
	animating   bool

	// Transient header message
	flash      string
	flashUntil time.Time

	// Help overlay
	showHelp bool

	// Log overlay
	showLogs    bool
	logFollow   bool
	logLines    []string
	logViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = OpenBrowser
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	profile := opts.Profile
	if profile.Name == "" {
		profile = config.DefaultProfile()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		store:        opts.Store,
		prefsPath:    prefsPath,
		logPath:      opts.LogPath,
		pollInterval: opts.PollInterval,
		logger:       logger,
		refresh:      opts.Refresh,
		openURL:      openURL,
		now:          now,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.ThemeName),
		showLinks:    opts.ShowLinks,
		spinner:      sp,
		profile:      profile,
		panel:        activity.NewPanel(opts.Timing),
		logFollow:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(statusInterval),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(m.logWidth(), m.logHeight())
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case PresenceMsg:
		return m.applyPresence(msg.Document)

	case ProfileMsg:
		m.profile = msg.Profile
		m.logger.Info("profile reloaded", "name", msg.Profile.Name, "socials", len(msg.Profile.Socials))
		return m, nil

	case animMsg:
		return m.handleFrame(time.Time(msg))

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs until the first document arrives.
		if m.hasDocument {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.logLines = []string(msg)
		m.updateLogViewport()
		return m, nil

	case logErrorMsg:
		m.logger.Warn("read log tail failed", "path", m.logPath, "err", msg.err)
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("open link failed", "url", msg.url, "err", msg.err)
			m.setFlash("could not open browser")
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// applyPresence reconciles a changed document into the activity panel.
func (m Model) applyPresence(doc lanyard.Document) (tea.Model, tea.Cmd) {
	now := m.now()
	ops := m.panel.Apply(doc, now)
	m.document = doc
	m.hasDocument = true
	for _, op := range ops {
		m.logger.Debug("activity", "op", op.Kind, "id", op.ID, "index", op.Index)
	}

	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := m.startAnimation(now); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// startAnimation begins the frame loop unless one is already running.
func (m *Model) startAnimation(now time.Time) tea.Cmd {
	if m.animating || !m.panel.Animating(now) {
		return nil
	}
	m.animating = true
	return animCmd(m.nextFrame(now))
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.panel.Advance(now)
	if m.panel.Animating(now) {
		return m, animCmd(m.nextFrame(now))
	}
	m.animating = false
	return m, nil
}

// nextFrame returns the delay to the next animation frame: one frame, or
// sooner when a queued mutation falls due first.
func (m Model) nextFrame(now time.Time) time.Duration {
	d := frameInterval
	if due, ok := m.panel.NextDue(); ok {
		if until := due.Sub(now); until > 0 && until < d {
			d = until
		}
	}
	return d
}

// handleTick processes the status tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showLogs && m.logFollow {
		cmds = append(cmds, loadLogsCmd(m.logPath))
	}
	if m.flash != "" && !m.now().Before(m.flashUntil) {
		m.flash = ""
	}
	cmds = append(cmds, tickCmd(statusInterval))
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLinks):
		m.showLinks = !m.showLinks
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh == nil {
			return m, nil
		}
		if m.refresh() {
			m.setFlash("refreshing...")
		} else {
			m.setFlash("slow down")
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenTrack):
		card, ok := m.panel.Current()
		if !ok || card.TrackURL == "" {
			return m, nil
		}
		return m, openURLCmd(m.openURL, card.TrackURL)

	case key.Matches(msg, m.keys.OpenArtist):
		card, ok := m.panel.Current()
		if !ok || card.ArtistURL == "" {
			return m, nil
		}
		return m, openURLCmd(m.openURL, card.ArtistURL)

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		m.logFollow = true
		return m, loadLogsCmd(m.logPath)
	}

	return m, nil
}

// quit tears the activity list down before leaving so no queued
// transition outlives the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.panel.Close()
	m.animating = false
	return m, tea.Quit
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashUntil = m.now().Add(flashDuration)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, ShowLinks: m.showLinks}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
}

// renderMain renders the header above the centered card.
func (m Model) renderMain() string {
	now := m.now()
	header := m.renderHeader(now)

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderProfile(),
		m.renderActivity(now),
	)
	bodyHeight := m.height - lipgloss.Height(header)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Top, body)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(placed)
	return b.String()
}

// Messages

// PresenceMsg carries a changed presence document from the poller.
type PresenceMsg struct {
	Document lanyard.Document
}

// ProfileMsg carries a reloaded profile section from the config watcher.
type ProfileMsg struct {
	Profile config.Profile
}

type tickMsg time.Time

type animMsg time.Time

type snapshotMsg state.Snapshot

type openedMsg struct {
	url string
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func animCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return animMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func openURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: open(url)}
	}
}

// NewProgram builds the Bubble Tea program for m. The program stops when
// ctx is cancelled.
func NewProgram(ctx context.Context, m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}
