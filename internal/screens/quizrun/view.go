package quizrun

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nkohli/algoprep/internal/grade"
	"github.com/nkohli/algoprep/internal/ui/theme"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	switch {
	case m.errMsg != "":
		v.SetContent(m.renderError())
	case m.finished:
		v.SetContent(m.renderSummary())
	default:
		v.SetContent(m.renderQuestion())
	}
	return v
}

func (m *Model) renderError() string {
	msg := theme.Incorrect.Render("Error: " + m.errMsg)
	hint := theme.Hint.Render("Press any key to exit")
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render("\n\n" + msg + "\n\n" + hint)
}

// renderQuestion renders the active question with the countdown header.
func (m *Model) renderQuestion() string {
	q := m.qz.Questions[m.index]

	var b strings.Builder

	// Header: language left, progress and clock right.
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Quiz: %s", m.qz.Language))

	clockStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if m.remaining.Seconds() <= 3 {
		clockStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Q %d/%d  ", m.index+1, m.qz.QuestionsCount()),
	) + clockStyle.Render(fmt.Sprintf("0:%02d", int(m.remaining.Seconds())))

	header := left
	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		header += strings.Repeat(" ", pad) + right
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(m.width-4, 0))))
	b.WriteString("\n\n")

	// Question text.
	b.WriteString(lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	switch q.Type {
	case grade.TypeTrueFalse:
		b.WriteString(lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(theme.ButtonActive.Render("T  True") + "   " + theme.ButtonActive.Render("F  False")))
	case grade.TypeSingleChoice, grade.TypeMultipleChoice:
		b.WriteString(m.renderOptions(q))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(m.keyHint(q.Type)))

	return b.String()
}

// renderOptions renders choice options with the cursor and, for
// multiple choice, the toggle markers.
func (m *Model) renderOptions(q grade.Question) string {
	var b strings.Builder
	for i, option := range q.Options {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}

		marker := ""
		if q.Type == grade.TypeMultipleChoice {
			marker = "[ ] "
			if m.checked[i] {
				marker = "[x] "
			}
		}

		line := fmt.Sprintf("  %s%s%d) %s", prefix, marker, i+1, option)
		if i == m.cursor {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) keyHint(t grade.QuestionType) string {
	switch t {
	case grade.TypeTrueFalse:
		return "T true · F false · Esc abandon"
	case grade.TypeSingleChoice:
		return "1-4 answer · ↑↓ move · Enter submit · Esc abandon"
	case grade.TypeMultipleChoice:
		return "1-4/Space toggle · ↑↓ move · Enter submit · Esc abandon"
	}
	return ""
}

// renderSummary renders the finalized attempt: score, level, and a
// per-question breakdown.
func (m *Model) renderSummary() string {
	if m.result == nil {
		return ""
	}

	var b strings.Builder

	title := "Quiz complete"
	if m.timedOut {
		title = "Time's up"
	}
	b.WriteString(theme.Title.Width(m.width).Render(title))
	b.WriteString("\n\n")

	score := m.result.Score
	b.WriteString(theme.Subtitle.Width(m.width).Render(
		fmt.Sprintf("Score: %d/%d (%d%%)", score.Correct, score.Total, score.Percentage)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(m.width).Render(
		"Skill level: " + string(m.result.Level)))
	b.WriteString("\n\n")

	for i, aq := range m.result.Attempt.Questions {
		mark := theme.Incorrect.Render("✗")
		if ok, err := grade.GradeQuestion(aq.Question, aq.UserAnswer); err == nil && ok {
			mark = theme.Correct.Render("✓")
		}
		note := ""
		if aq.UserAnswer.Skipped {
			note = theme.Hint.Render("  (no answer)")
		}
		b.WriteString(fmt.Sprintf("  %s %d. %s%s\n", mark, i+1, truncate(aq.Prompt, max(m.width-12, 10)), note))
	}

	b.WriteString("\n")
	if m.persistErr != nil {
		b.WriteString(theme.Incorrect.Render("  Saving attempt failed: " + m.persistErr.Error()))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  R retry save · Enter exit"))
	} else {
		b.WriteString(theme.Hint.Render("  Enter exit"))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
