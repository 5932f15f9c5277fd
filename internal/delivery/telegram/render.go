package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

const (
	faceDownCards       = "🂠   🂠   🂠"
	resultsQuestionRune = 80
)

// roundView is everything the round message shows at one moment.
type roundView struct {
	Course      string
	Difficulty  entities.Difficulty
	Round       int // zero-based
	TotalRounds int
	Question    *entities.Question
	Timer       entities.TimerState
	Stress      *entities.StressEvent
	TimeUp      bool
	Record      *entities.AnswerRecord
	Log         []string // answer log, newest first
}

func (v roundView) header() string {
	return bold(fmt.Sprintf("Round %d/%d", v.Round+1, v.TotalRounds)) +
		md(fmt.Sprintf(" · %s : %s", v.Course, v.Difficulty))
}

// renderCards renders a round before its card is flipped.
func renderCards(v roundView) string {
	var sb strings.Builder

	sb.WriteString(v.header())
	sb.WriteString("\n\n")
	sb.WriteString(md(faceDownCards))
	sb.WriteString("\n\n")
	sb.WriteString(md("Tap a card to reveal the question."))
	writeLog(&sb, v.Log)

	return sb.String()
}

// renderQuestion renders a round while it is being answered.
func renderQuestion(v roundView) string {
	var sb strings.Builder

	sb.WriteString(v.header())
	sb.WriteString("\n\n")
	sb.WriteString(bold(v.Question.Question))
	sb.WriteString("\n\n")
	sb.WriteString(md(timerLine(v.Timer)))

	if v.Stress != nil {
		sb.WriteString("\n\n⚡ ")
		sb.WriteString(italic(v.Stress.Message))
	}
	if v.TimeUp {
		sb.WriteString("\n\n")
		sb.WriteString(bold("⏰ Time's up!"))
	}

	return sb.String()
}

// renderFinalized renders a round after its answer has been recorded.
func renderFinalized(v roundView) string {
	var sb strings.Builder

	sb.WriteString(v.header())
	sb.WriteString("\n\n")
	sb.WriteString(bold(v.Record.QuestionText))
	sb.WriteString("\n\n")

	if v.Record.Answered() {
		sb.WriteString(md(fmt.Sprintf("Your answer: %s %s", v.Record.SelectedText, v.Record.Mark())))
	} else {
		sb.WriteString(md(fmt.Sprintf("⏰ Time's up! %s %s", v.Record.ChosenText(), v.Record.Mark())))
	}
	if !v.Record.IsCorrect {
		sb.WriteString("\n")
		sb.WriteString(md("Correct answer: " + v.Record.CorrectText))
	}

	writeLog(&sb, v.Log)
	return sb.String()
}

// renderResults renders the final score and every round of the session.
func renderResults(course string, d entities.Difficulty, res entities.Results) string {
	var sb strings.Builder

	sb.WriteString(bold("🏁 Results"))
	sb.WriteString(md(fmt.Sprintf(" · %s : %s", course, d)))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Score: " + res.ScoreLine()))

	for _, r := range res.Answers {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("Q%d: %s", r.Round+1, truncate(r.QuestionText, resultsQuestionRune))))
		sb.WriteString("\n")
		line := fmt.Sprintf("%s %s", r.ChosenText(), r.Mark())
		if !r.IsCorrect {
			line += fmt.Sprintf(" (correct: %s)", r.CorrectText)
		}
		sb.WriteString(md(line))
	}

	return sb.String()
}

func timerLine(s entities.TimerState) string {
	line := buildTimerBar(s.Fraction(), timerBarLength) + " ⏱ " + s.Label()
	if s.LowTime {
		line = "🔥 " + line
	}
	return line
}

func writeLog(sb *strings.Builder, log []string) {
	if len(log) == 0 {
		return
	}
	sb.WriteString("\n\n")
	sb.WriteString(italic("Answers"))
	sb.WriteString("\n")
	sb.WriteString(md(strings.Join(log, "\n")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
