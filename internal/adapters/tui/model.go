// Package tui provides the fullscreen timer view using the Bubbletea
// framework. The model is a pure observer: every key press is forwarded to
// the controller, and the display follows the snapshots the engine
// broadcasts.
package tui

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dvidx/tempo/internal/config"
	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with
// defaults. If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg drives the once-per-second re-render.
type tickMsg time.Time

// snapshotMsg wraps a state broadcast from the engine.
type snapshotMsg domain.TimerState

// statsMsg carries a refreshed stats summary.
type statsMsg domain.StatsSummary

// Model is the Bubbletea model for the watch view.
type Model struct {
	controller ports.TimerController
	snapshots  <-chan domain.TimerState
	settings   ports.SettingsProvider

	state  domain.TimerState
	stats  domain.StatsSummary
	theme  config.ThemeConfig
	width  int
	height int

	progress progress.Model
	now      func() time.Time
}

// NewModel builds the watch view over a controller and the engine's
// broadcast channel. snapshots may be nil; the view then relies on its own
// per-second state polls.
func NewModel(controller ports.TimerController, snapshots <-chan domain.TimerState, settings ports.SettingsProvider, theme *config.ThemeConfig) Model {
	return Model{
		controller: controller,
		snapshots:  snapshots,
		settings:   settings,
		state:      controller.State(),
		theme:      resolveTheme(theme),
		progress:   progress.New(progress.WithDefaultGradient()),
		now:        time.Now,
	}
}

// Init starts the tick loop and the broadcast listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForSnapshot(), m.fetchStatsCmd())
}

// waitForSnapshot blocks on the broadcast channel and republishes the next
// snapshot as a message.
func (m Model) waitForSnapshot() tea.Cmd {
	if m.snapshots == nil {
		return nil
	}
	ch := m.snapshots
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(state)
	}
}

// fetchStatsCmd refreshes the stats footer asynchronously.
func (m Model) fetchStatsCmd() tea.Cmd {
	ctrl := m.controller
	return func() tea.Msg {
		summary, err := ctrl.StatsSummary(context.Background())
		if err != nil || summary == nil {
			return nil
		}
		return statsMsg(*summary)
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.dispatch(func(ctx context.Context) (domain.TimerState, error) {
				return m.controller.Start(ctx)
			})
		case "p":
			if m.state.Running {
				m.dispatch(func(ctx context.Context) (domain.TimerState, error) {
					return m.controller.Pause(ctx)
				})
			} else if m.state.IsPaused() {
				m.dispatch(func(ctx context.Context) (domain.TimerState, error) {
					return m.controller.Resume(ctx)
				})
			}
		case "r":
			m.dispatch(func(ctx context.Context) (domain.TimerState, error) {
				return m.controller.Reset(ctx)
			})
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

	case tickMsg:
		return m, tea.Batch(tickCmd(), m.fetchStatsCmd())

	case snapshotMsg:
		m.state = domain.TimerState(msg)
		return m, m.waitForSnapshot()

	case statsMsg:
		m.stats = domain.StatsSummary(msg)
	}

	var cmd tea.Cmd
	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

// dispatch routes a controller call and folds the returned snapshot into
// the view immediately, without waiting for the broadcast round trip.
func (m *Model) dispatch(op func(context.Context) (domain.TimerState, error)) {
	state, err := op(context.Background())
	if err == nil {
		m.state = state
	}
}

// phaseColor returns the accent color for the current phase.
func (m Model) phaseColor() lipgloss.Color {
	if m.state.Phase.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorWork)
}

// timerColor returns the timer color, accounting for pause state.
func (m Model) timerColor() lipgloss.Color {
	if m.state.IsPaused() {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.phaseColor()
}

// View renders the watch view.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Tempo", m.theme.IconApp)))

	switch {
	case m.state.IsIdle():
		sections = append(sections, statusStyle.Render("No phase running"))
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render("[s]tart  [q]uit"))

	case m.state.JustCompleted():
		sections = m.viewCompleted(sections, statusStyle, helpStyle)

	default:
		sections = m.viewPhase(sections, statusStyle, helpStyle)
	}

	// Stats footer
	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(fmt.Sprintf("%s Today: %d · Week: %d · Streak: %d days",
		m.theme.IconStats, m.stats.Today, m.stats.Week, m.stats.Streak)))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// viewPhase renders a running or paused phase.
func (m Model) viewPhase(sections []string, statusStyle, helpStyle lipgloss.Style) []string {
	status := "running"
	if m.state.IsPaused() {
		status = "paused"
	}
	sections = append(sections, statusStyle.Render(fmt.Sprintf("%s (%s)", domain.PhaseLabel(m.state.Phase), status)))

	var remaining time.Duration
	if m.state.IsPaused() {
		remaining = *m.state.Remaining
	} else {
		remaining = m.state.RemainingAt(m.now())
	}
	sections = append(sections, "")
	sections = append(sections, renderBigTime(formatClock(remaining), m.timerColor(), m.width))

	if m.state.IsPaused() {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	// Gradient progress bar per phase
	sections = append(sections, "")
	var pbar progress.Model
	if m.state.Phase.IsBreak() {
		pbar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	} else {
		pbar = progress.New(progress.WithGradient(m.theme.WorkGradientStart, m.theme.WorkGradientEnd))
	}
	pbar.Width = m.width - 4
	sections = append(sections, pbar.ViewAs(m.progressRatio()))

	sections = append(sections, "")
	pauseAction := "[p]ause"
	if m.state.IsPaused() {
		pauseAction = "[p]resume"
	}
	sections = append(sections, helpStyle.Render(fmt.Sprintf("%s  [r]eset  [q]uit", pauseAction)))
	return sections
}

// viewCompleted renders the settled snapshot between a phase ending and the
// next one starting.
func (m Model) viewCompleted(sections []string, statusStyle, helpStyle lipgloss.Style) []string {
	accent := lipgloss.NewStyle().Foreground(m.phaseColor())

	sections = append(sections, "")
	if m.state.Phase == domain.PhaseWork {
		sections = append(sections, accent.Render("Work block complete! Great focus."))
	} else {
		sections = append(sections, accent.Render(fmt.Sprintf("%s over!", domain.PhaseLabel(m.state.Phase))))
	}
	sections = append(sections, m.progress.ViewAs(1.0))

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("Next phase starts in a moment..."))
	sections = append(sections, helpStyle.Render("[s]tart now  [r]eset  [q]uit"))
	return sections
}

// progressRatio converts the snapshot into a 0..1 completion fraction.
func (m Model) progressRatio() float64 {
	total := m.phaseTotal()
	if total <= 0 {
		return 0
	}
	var remaining time.Duration
	if m.state.IsPaused() {
		remaining = *m.state.Remaining
	} else {
		remaining = m.state.RemainingAt(m.now())
	}
	ratio := 1 - remaining.Seconds()/total.Seconds()
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// phaseTotal recovers the full phase length from the snapshot's own
// timestamps while running, and from the configured durations while paused.
func (m Model) phaseTotal() time.Duration {
	if m.state.Running && m.state.StartTime != nil && m.state.EndTime != nil {
		return m.state.EndTime.Sub(*m.state.StartTime)
	}
	if m.settings != nil {
		return m.settings.Settings().Normalize().DurationFor(m.state.Phase)
	}
	if m.state.Remaining != nil {
		return *m.state.Remaining
	}
	return 0
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// formatClock formats a duration as MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
