package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

const (
	urgentColor  = "#FF4D4F"
	faceDownCard = "🂠"
	logLimit     = 5
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	urgent  lipgloss.Style
	correct lipgloss.Style
	wrong   lipgloss.Style
	stress  lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain.Bold(true), muted: plain, urgent: plain.Bold(true),
			correct: plain, wrong: plain, stress: plain.Bold(true),
		}
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		urgent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(urgentColor)),
		correct: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		wrong:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		stress: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 1),
	}
}

func renderHeader(m Model) string {
	title := m.style.title.Render(fmt.Sprintf("%s · %s", m.opts.Course, m.opts.Difficulty))
	if !m.started {
		return title
	}
	return title + "  " + m.style.muted.Render(fmt.Sprintf("Round %d/%d", m.round+1, m.total))
}

func renderBody(m Model) string {
	if !m.started {
		return m.style.muted.Render("Shuffling the deck...")
	}
	if m.question == nil {
		return strings.Repeat(faceDownCard+" ", 2) + faceDownCard + "\n\n" + m.style.muted.Render("Press space to flip a card")
	}

	lines := []string{m.question.Question, ""}
	for i, opt := range m.question.Options {
		lines = append(lines, renderOption(m, i, opt))
	}
	lines = append(lines, "", renderTimer(m))

	if m.stress != nil {
		lines = append(lines, m.style.stress.Render(m.stress.Message))
	}
	if m.timeUp {
		lines = append(lines, m.style.urgent.Render("⏰ Time's up!"))
	}
	return strings.Join(lines, "\n")
}

func renderOption(m Model, i int, opt string) string {
	line := fmt.Sprintf("%d. %s", i+1, opt)
	if m.record == nil {
		return line
	}

	switch {
	case i == m.record.CorrectIndex:
		return m.style.correct.Render(line + " ✓")
	case i == m.record.SelectedIndex:
		return m.style.wrong.Render(line + " ✗")
	default:
		return m.style.muted.Render(line)
	}
}

func renderTimer(m Model) string {
	if m.timer.LowTime {
		return m.urgent.ViewAs(m.timer.Fraction()) + " " + m.style.urgent.Render("🔥 "+m.timer.Label())
	}
	return m.bar.ViewAs(m.timer.Fraction()) + " " + m.timer.Label()
}

func renderLog(m Model) string {
	if len(m.records) == 0 {
		return ""
	}

	lines := service.AnswerLog(m.records)
	if len(lines) > logLimit {
		lines = lines[:logLimit]
	}
	return m.style.muted.Render("Answers\n" + strings.Join(lines, "\n"))
}

func renderFooter(m Model) string {
	var hint string
	switch {
	case !m.started:
		hint = "q quit"
	case m.question == nil:
		hint = "space flip · q quit"
	case m.record == nil:
		hint = fmt.Sprintf("1-%d answer · q quit", min(len(m.question.Options), 9))
	case m.timeUp:
		hint = "q quit"
	case m.round+1 >= m.total:
		hint = "enter results · q quit"
	default:
		hint = "enter next · q quit"
	}
	return m.style.muted.Render(hint)
}

func renderResults(m Model) string {
	res := m.results

	var b strings.Builder
	b.WriteString(m.style.title.Render(fmt.Sprintf("Results · %s · %s", m.opts.Course, m.opts.Difficulty)))
	b.WriteString("\n\n")
	for _, rec := range res.Answers {
		b.WriteString(renderResultLine(m, rec))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.style.title.Render("Score: " + res.ScoreLine()))
	b.WriteString("\n")
	b.WriteString(m.style.muted.Render("enter or q to exit"))
	return b.String()
}

func renderResultLine(m Model, rec entities.AnswerRecord) string {
	mark := m.style.wrong.Render(rec.Mark())
	if rec.IsCorrect {
		mark = m.style.correct.Render(rec.Mark())
	}
	return fmt.Sprintf("Q%d: %s\n    your answer: %s %s\n    correct: %s",
		rec.Round+1, rec.QuestionText, rec.ChosenText(), mark, rec.CorrectText)
}
