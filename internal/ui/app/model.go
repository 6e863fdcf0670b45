package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "pomo/internal/modules/settings/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/components"
	"pomo/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	Start(ctx context.Context) (timerdto.StateOutput, error)
	Pause(ctx context.Context) (timerdto.StateOutput, error)
	Reset(ctx context.Context, reason string) (timerdto.StateOutput, error)
	Status(ctx context.Context) (timerdto.StateOutput, error)
	Tick(ctx context.Context) (timerdto.StateOutput, error)
	Interrupt(ctx context.Context, kind string) (timerdto.StateOutput, error)
	DismissBanner(ctx context.Context) error
}

type settingsPort interface {
	SelectPreset(ctx context.Context, id string) (settingsdto.PresetOutput, error)
	Set(ctx context.Context, key, value string) (settingsdto.SettingsOutput, error)
}

// hints must stay in sync with the switch in executePalette.
var paletteHints = []string{
	"preset <id>",
	"set <key> <value>",
	"reset [call_interrupted|time_changed]",
	"interrupt <call|time-change>",
	"dismiss",
}

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type stateMsg struct {
	out    timerdto.StateOutput
	err    error
	action string
}

type paletteDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Start   key.Binding
	Pause   key.Binding
	Reset   key.Binding
	Dismiss key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start/resume")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss banner")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Reset},
		{k.Dismiss, k.Palette},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the single timer view. The model owns the one-second tick; every
// state change goes through the timer port.
type Model struct {
	timer    timerPort
	settings settingsPort

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	interval time.Duration

	state  timerdto.StateOutput
	loaded bool
	status string
	width  int
	height int
}

func NewModel(timer timerPort, settings settingsPort, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		timer:    timer,
		settings: settings,
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(paletteHints),
		interval: interval,
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	// Status resolves phases that elapsed while the UI was closed.
	return tea.Batch(m.call("", m.timer.Status), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) call(action string, fn func(context.Context) (timerdto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := fn(context.Background())
		return stateMsg{out: out, err: err, action: action}
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Keys belong to the palette while it is open; the tick keeps running.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(msg.Width-4, 72))

	case tickMsg:
		return m, tea.Batch(m.call("", m.timer.Tick), m.tickCmd())

	case stateMsg:
		if msg.err != nil {
			m.status = errorStatus(msg.action, msg.err)
			return m, nil
		}
		m.state = msg.out
		m.loaded = true
		if len(msg.out.Completed) > 0 {
			m.status = completedStatus(msg.out)
		} else if msg.action != "" {
			m.status = msg.action
		}

	case paletteDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, m.call("", m.timer.Status)

	case components.PaletteSubmitMsg:
		return m, m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	default:
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		case key.Matches(msg, m.keys.Start):
			return m, m.call("started", m.timer.Start)
		case key.Matches(msg, m.keys.Pause):
			if m.state.Status == "running" && m.state.PausesLeft == 0 {
				m.status = "no pauses left in strict mode"
				return m, nil
			}
			return m, m.call("paused", m.timer.Pause)
		case key.Matches(msg, m.keys.Reset):
			return m, m.call("reset", func(ctx context.Context) (timerdto.StateOutput, error) {
				return m.timer.Reset(ctx, "")
			})
		case key.Matches(msg, m.keys.Dismiss):
			m.state.Banner = ""
			return m, func() tea.Msg {
				return paletteDoneMsg{status: "ready", err: m.timer.DismissBanner(context.Background())}
			}
		}
	}
	return m, nil
}

func (m Model) executePalette(input string) tea.Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	switch fields[0] {
	case "preset":
		return func() tea.Msg {
			preset, err := m.settings.SelectPreset(context.Background(), arg(1))
			return paletteDoneMsg{status: "preset: " + preset.Name, err: err}
		}
	case "set":
		return func() tea.Msg {
			_, err := m.settings.Set(context.Background(), arg(1), arg(2))
			return paletteDoneMsg{status: fmt.Sprintf("%s = %s", arg(1), arg(2)), err: err}
		}
	case "reset":
		return m.call("reset", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.Reset(ctx, arg(1))
		})
	case "interrupt":
		return m.call("interrupted", func(ctx context.Context) (timerdto.StateOutput, error) {
			return m.timer.Interrupt(ctx, arg(1))
		})
	case "dismiss":
		return func() tea.Msg {
			return paletteDoneMsg{status: "ready", err: m.timer.DismissBanner(context.Background())}
		}
	default:
		return func() tea.Msg {
			return paletteDoneMsg{err: fmt.Errorf("unknown command %q", fields[0])}
		}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.palette.Visible() && m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.palette.View())
	}

	var body strings.Builder
	if !m.loaded {
		body.WriteString(theme.Muted.Render("loading…"))
	} else {
		body.WriteString(theme.Title.Render(phaseLabel(m.state.Phase)) + "  " + theme.Muted.Render(m.state.PresetName) + "\n\n")
		body.WriteString(theme.Clock.Render(FormatRemaining(m.state.RemainingMs)) + "\n\n")
		body.WriteString(theme.Muted.Render(m.state.CycleLabel+"  ·  "+m.state.Status) + "\n")
		if m.state.Phase == "work" && m.state.PausesLeft >= 0 {
			body.WriteString(theme.Muted.Render(fmt.Sprintf("pauses left: %d", m.state.PausesLeft)) + "\n")
		}
		if m.state.Banner != "" {
			body.WriteString("\n" + theme.Alert.Render(bannerText(m.state.Banner)) + "\n")
		}
	}
	pane := theme.Pane.BorderForeground(theme.PhaseAccent(m.state.Phase)).Render(body.String())

	var sb strings.Builder
	sb.WriteString(pane + "\n")
	sb.WriteString(theme.Hot.Render(m.status) + "\n")
	if m.showHelp {
		sb.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sb.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return theme.App.Render(sb.String())
}

// FormatRemaining renders milliseconds as mm:ss, rounding partial seconds up.
func FormatRemaining(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := (ms + 999) / 1000
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func phaseLabel(phase string) string {
	switch phase {
	case "short_break":
		return "Short break"
	case "long_break":
		return "Long break"
	default:
		return "Focus"
	}
}

func bannerText(reason string) string {
	switch reason {
	case "call_interrupted":
		return "Session reset: a call interrupted the timer."
	case "time_changed":
		return "Session reset: the system clock changed."
	default:
		return "Session reset."
	}
}

func completedStatus(out timerdto.StateOutput) string {
	last := out.Completed[len(out.Completed)-1]
	if len(out.Completed) == 1 {
		return fmt.Sprintf("%s complete, now %s", strings.ToLower(phaseLabel(last)), strings.ToLower(phaseLabel(out.Phase)))
	}
	return fmt.Sprintf("%d phases completed while away, now %s", len(out.Completed), strings.ToLower(phaseLabel(out.Phase)))
}

func errorStatus(action string, err error) string {
	if action == "" {
		return "error: " + err.Error()
	}
	return action + " failed: " + err.Error()
}
