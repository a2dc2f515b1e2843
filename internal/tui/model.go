package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/targetrun/targetrun/internal/batch"
)

// TickMsg is sent periodically to refresh the clock.
type TickMsg time.Time

// JobStartedMsg reports that a job began running.
type JobStartedMsg struct {
	Index int
}

// JobDoneMsg reports a finished job.
type JobDoneMsg struct {
	Index  int
	Result batch.JobResult
}

// BatchDoneMsg reports that every job has finished.
type BatchDoneMsg struct{}

// jobState is the display state of one job.
type jobState int

const (
	statePending jobState = iota
	stateRunning
	stateDone
)

type jobRow struct {
	name     string
	state    jobState
	started  time.Time
	duration time.Duration
	status   int
	err      error
}

// Model represents the TUI state.
type Model struct {
	rows      []jobRow
	startTime time.Time
	width     int
	height    int
	done      bool
	quitting  bool
}

// New creates a TUI model for the given job names.
func New(jobNames []string) Model {
	rows := make([]jobRow, len(jobNames))
	for i, name := range jobNames {
		rows[i] = jobRow{name: name}
	}
	return Model{
		rows:      rows,
		startTime: time.Now(),
		width:     80,
		height:    24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Leaving the view does not kill running children; they
			// finish on their own.
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case JobStartedMsg:
		if msg.Index >= 0 && msg.Index < len(m.rows) {
			m.rows[msg.Index].state = stateRunning
			m.rows[msg.Index].started = time.Now()
		}
		return m, nil

	case JobDoneMsg:
		if msg.Index >= 0 && msg.Index < len(m.rows) {
			row := &m.rows[msg.Index]
			row.state = stateDone
			row.duration = msg.Result.Duration
			row.status = msg.Result.Result.Status
			row.err = msg.Result.Err
		}
		return m, nil

	case BatchDoneMsg:
		m.done = true
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// Elapsed returns the time since the batch started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// counts returns how many jobs are pending, running, and done.
func (m Model) counts() (pending, running, done int) {
	for _, row := range m.rows {
		switch row.state {
		case stateRunning:
			running++
		case stateDone:
			done++
		default:
			pending++
		}
	}
	return
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
