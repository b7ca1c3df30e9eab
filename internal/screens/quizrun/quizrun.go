package quizrun

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nkohli/algoprep/internal/grade"
	"github.com/nkohli/algoprep/internal/quiz"
)

// Model is the root Bubble Tea model for one timed quiz attempt. The
// model owns the countdown and calls the engine's Timeout itself, so
// the engine runs with its internal timer disabled and the on-screen
// clock is the clock that decides.
type Model struct {
	engine       *quiz.Engine
	qz           *quiz.Quiz
	questionTime time.Duration

	width  int
	height int

	index     int
	remaining time.Duration
	cursor    int    // highlighted option for choice questions
	checked   []bool // toggled options for multiple choice

	finished   bool
	timedOut   bool
	result     *quiz.Result
	persistErr error
	errMsg     string
}

// New creates a quiz attempt model for userID over qz. questionTime <= 0
// uses the engine default.
func New(qz *quiz.Quiz, userID string, store quiz.AttemptStore, questionTime time.Duration) *Model {
	cfg := quiz.Config{QuestionTime: questionTime, AutoTimer: false}
	if questionTime <= 0 {
		cfg.QuestionTime = quiz.DefaultConfig().QuestionTime
	}
	return &Model{
		engine:       quiz.NewEngine(qz, userID, store, cfg),
		qz:           qz,
		questionTime: cfg.QuestionTime,
	}
}

func (m *Model) Init() tea.Cmd {
	if err := m.engine.Start(); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.resetQuestion(0)
	return tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case timerTickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished || m.errMsg != "" {
		return m, nil
	}

	m.remaining -= time.Second
	if m.remaining > 0 {
		return m, tickCmd()
	}

	// Time ran out: the whole attempt is submitted, not just this
	// question.
	m.timedOut = true
	_, err := m.engine.Timeout(context.Background(), m.index)
	m.finish(err)
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.engine.Abandon()
		return m, tea.Quit
	}

	if m.errMsg != "" {
		return m, tea.Quit
	}

	if m.finished {
		switch key {
		case "r":
			if m.persistErr != nil {
				_, m.persistErr = m.engine.Persist(context.Background())
			}
			return m, nil
		case "enter", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if key == "esc" {
		m.engine.Abandon()
		return m, tea.Quit
	}

	q := m.qz.Questions[m.index]
	switch q.Type {
	case grade.TypeTrueFalse:
		switch key {
		case "t", "y":
			return m.submit(grade.Answer{Bool: true})
		case "f", "n":
			return m.submit(grade.Answer{Bool: false})
		}

	case grade.TypeSingleChoice:
		if i, ok := optionIndex(key, len(q.Options)); ok {
			m.cursor = i
			return m.submit(grade.Answer{Text: q.Options[i]})
		}
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(q.Options)-1 {
				m.cursor++
			}
		case "enter":
			return m.submit(grade.Answer{Text: q.Options[m.cursor]})
		}

	case grade.TypeMultipleChoice:
		if i, ok := optionIndex(key, len(q.Options)); ok {
			m.checked[i] = !m.checked[i]
			return m, nil
		}
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(q.Options)-1 {
				m.cursor++
			}
		case "space":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "enter":
			var multi []string
			for i, on := range m.checked {
				if on {
					multi = append(multi, q.Options[i])
				}
			}
			return m.submit(grade.Answer{Multi: multi})
		}
	}

	return m, nil
}

// submit records the answer for the current question and either advances
// the countdown to the next question or finishes the attempt.
func (m *Model) submit(answer grade.Answer) (tea.Model, tea.Cmd) {
	_, err := m.engine.Submit(context.Background(), m.index, answer)

	state, index := m.engine.State()
	if state == quiz.StateCompleted {
		m.finish(err)
		return m, nil
	}

	m.resetQuestion(index)
	return m, nil
}

// finish captures the finalized result. err is a persistence failure;
// the score and level are still valid and the write can be retried.
func (m *Model) finish(err error) {
	m.finished = true
	m.result = m.engine.Result()
	m.persistErr = err
}

// resetQuestion points the model at question index with a fresh clock.
func (m *Model) resetQuestion(index int) {
	m.index = index
	m.remaining = m.questionTime
	m.cursor = 0
	m.checked = make([]bool, len(m.qz.Questions[index].Options))
}

// optionIndex maps a number key to an option index.
func optionIndex(key string, count int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	if i >= count {
		return 0, false
	}
	return i, true
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// Result returns the finalized attempt result, or nil if the attempt
// was abandoned before completion.
func (m *Model) Result() *quiz.Result {
	return m.result
}

// Run starts the quiz attempt in the alternate screen and blocks until
// it completes or is abandoned.
func Run(qz *quiz.Quiz, userID string, store quiz.AttemptStore, questionTime time.Duration) (*quiz.Result, error) {
	model := New(qz, userID, store, questionTime)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return nil, err
	}
	return model.Result(), nil
}
