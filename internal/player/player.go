// Package player renders a Timeline in the terminal and drives it from the
// keyboard. It only uses the Timeline's public query and event interface.
package player

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/timesync/internal/emitter"
	"github.com/tOgg1/timesync/internal/timeline"
)

const (
	defaultTimeFormat = "2006-01-02 15:04Z07:00"
	defaultStepAmount = 1
)

// Config controls player behavior.
type Config struct {
	Title      string
	Theme      string
	ShowGaps   bool
	TimeFormat string
	Autostart  bool

	// StepAmount and StepUnit are used by the + and - keys.
	StepAmount int
	StepUnit   timeline.Unit
}

func (c Config) withDefaults() Config {
	if c.TimeFormat == "" {
		c.TimeFormat = defaultTimeFormat
	}
	if c.StepAmount <= 0 {
		c.StepAmount = defaultStepAmount
		c.StepUnit = timeline.Hour
	}
	if c.Title == "" {
		c.Title = "timesync"
	}
	return c
}

// eventMsg carries a timeline event into the bubbletea loop.
type eventMsg timeline.Event

// Model is the bubbletea model for the player.
type Model struct {
	tl     *timeline.Timeline
	cfg    Config
	styles styles

	width  int
	height int

	times       []time.Time
	enabled     map[time.Time]bool
	enabledN    int
	gapAfter    map[time.Time]bool
	selected    time.Time
	hasSelected bool
	valid       bool
	animating   bool
}

// NewModel creates a player model bound to tl.
func NewModel(tl *timeline.Timeline, cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		tl:     tl,
		cfg:    cfg,
		styles: themeStyles(cfg.Theme),
		width:  80,
	}
	m.refresh()
	return m
}

// Run opens the full-screen player until the user quits.
func Run(tl *timeline.Timeline, cfg Config) error {
	model := NewModel(tl, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Send blocks until the event loop receives the message, and key handling
	// triggers events from inside the loop, so deliver from a fresh goroutine.
	unsubscribe := forward(tl, func(ev timeline.Event) { go program.Send(eventMsg(ev)) })
	defer unsubscribe()
	defer tl.Stop()

	if model.cfg.Autostart {
		tl.Start()
	}

	_, err := program.Run()
	return err
}

// forward subscribes fn to every timeline event and returns the undo function.
func forward(tl *timeline.Timeline, fn timeline.Handler) func() {
	types := []timeline.EventType{
		timeline.EventChangeTime,
		timeline.EventChangeTimes,
		timeline.EventChangeEnabledTimes,
		timeline.EventStartAnimation,
		timeline.EventStopAnimation,
	}
	ids := make([]emitter.ListenerID, len(types))
	for i, et := range types {
		ids[i] = tl.On(et, fn)
	}
	return func() {
		for i, et := range types {
			tl.Un(et, ids[i])
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case eventMsg:
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.tl.Stop()
		return m, tea.Quit
	case " ", "space", "p":
		m.tl.Toggle()
	case "right", "l", "n":
		m.tl.Next()
	case "left", "h", "b":
		m.tl.Prev()
	case "home", "g":
		m.tl.First()
	case "end", "G":
		m.tl.Last()
	case "+", "=":
		m.tl.Add(m.cfg.StepAmount, m.cfg.StepUnit)
	case "-", "_":
		m.tl.Sub(m.cfg.StepAmount, m.cfg.StepUnit)
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// refresh copies the timeline state the view needs.
func (m *Model) refresh() {
	m.times = m.tl.Times()

	enabled := m.tl.EnabledTimes()
	m.enabledN = len(enabled)
	m.enabled = make(map[time.Time]bool, len(enabled))
	for _, ts := range enabled {
		m.enabled[ts] = true
	}

	m.gapAfter = make(map[time.Time]bool)
	for _, iv := range m.tl.Intervals() {
		if iv.Gap {
			m.gapAfter[iv.From] = true
		}
	}

	m.selected, m.hasSelected = m.tl.SelectedTime()
	m.valid = m.tl.IsTimeValid()
	m.animating = m.tl.IsAnimating()
}
