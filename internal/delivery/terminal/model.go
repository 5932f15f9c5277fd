// Package terminal plays a quiz session in the terminal with Bubble Tea.
package terminal

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

const (
	defaultBarWidth = 40
	maxBarWidth     = 72
)

// Options configures the terminal model.
type Options struct {
	Course     string
	Difficulty entities.Difficulty
	NoColor    bool
}

// Model renders one quiz session and turns key presses into session input.
type Model struct {
	ctrl  Controller
	feed  *Feed
	opts  Options
	style styles

	bar    progress.Model
	urgent progress.Model

	round    int
	total    int
	started  bool
	question *entities.Question
	timer    entities.TimerState
	stress   *entities.StressEvent
	timeUp   bool
	record   *entities.AnswerRecord
	records  []entities.AnswerRecord
	results  *entities.Results
	quitting bool
}

// NewModel creates a model fed by feed and driving ctrl.
func NewModel(ctrl Controller, feed *Feed, opts Options) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(defaultBarWidth))
	urgent := progress.New(progress.WithSolidFill(urgentColor), progress.WithoutPercentage(), progress.WithWidth(defaultBarWidth))

	return Model{
		ctrl:   ctrl,
		feed:   feed,
		opts:   opts,
		style:  newStyles(opts.NoColor),
		bar:    bar,
		urgent: urgent,
	}
}

// EventMsg wraps a session event for Bubble Tea.
type EventMsg struct {
	Event service.Event
}

// timeUpDoneMsg ends the time-up visual of a round.
type timeUpDoneMsg struct {
	round int
}

// Init waits for the first session event.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.feed)
}

// Update applies session events and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		width := min(max(typed.Width-4, 10), maxBarWidth)
		m.bar.Width = width
		m.urgent.Width = width
		return m, nil
	case EventMsg:
		var cmd tea.Cmd
		m, cmd = m.applyEvent(typed.Event)
		return m, tea.Batch(cmd, waitForEvent(m.feed))
	case timeUpDoneMsg:
		if typed.round == m.round {
			m.timeUp = false
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.results != nil {
		return renderResults(m)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m),
		"",
		renderBody(m),
		"",
		renderLog(m),
		renderFooter(m),
	)
}

// Results returns the final results once the session has finished.
func (m Model) Results() (entities.Results, bool) {
	if m.results == nil {
		return entities.Results{}, false
	}
	return *m.results, true
}

func (m Model) applyEvent(e service.Event) (Model, tea.Cmd) {
	switch e.Kind {
	case service.EventRoundStarted:
		m.started = true
		m.round = e.Round
		m.total = e.TotalRounds
		m.question = nil
		m.timer = entities.TimerState{}
		m.stress = nil
		m.timeUp = false
		m.record = nil
	case service.EventQuestionRevealed:
		m.question = e.Question
		m.timer = e.Timer
	case service.EventTick, service.EventLowTime:
		if m.record == nil {
			m.timer = e.Timer
		}
	case service.EventStressApplied:
		m.timer = e.Timer
		m.stress = e.Stress
	case service.EventStressCleared:
		m.stress = nil
	case service.EventTimeUp:
		m.timer = e.Timer
		m.timeUp = true
		if e.Hold > 0 {
			round := m.round
			return m, tea.Tick(e.Hold, func(time.Time) tea.Msg { return timeUpDoneMsg{round: round} })
		}
	case service.EventRoundFinalized:
		m.record = e.Record
		m.stress = nil
		m.records = append(m.records, *e.Record)
	case service.EventSessionFinished:
		m.results = e.Results
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	case tea.KeySpace:
		m.ctrl.Reveal()
		return m, nil
	case tea.KeyEnter:
		if m.results != nil {
			return m.quit()
		}
		m.ctrl.Advance()
		return m, nil
	case tea.KeyRunes:
	default:
		return m, nil
	}

	if len(msg.Runes) != 1 {
		return m, nil
	}

	switch r := msg.Runes[0]; {
	case r == 'q':
		return m.quit()
	case r == ' ':
		m.ctrl.Reveal()
	case r == 'n':
		if m.results == nil {
			m.ctrl.Advance()
		}
	case r >= '1' && r <= '9':
		m.ctrl.Choose(int(r - '1'))
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.results == nil {
		m.ctrl.Stop()
		m.quitting = true
	}
	return m, tea.Quit
}

// waitForEvent blocks until the next session event or until the feed closes.
func waitForEvent(feed *Feed) tea.Cmd {
	return func() tea.Msg {
		if feed == nil {
			return nil
		}
		select {
		case e := <-feed.Events():
			return EventMsg{Event: e}
		case <-feed.Done():
			return nil
		}
	}
}
