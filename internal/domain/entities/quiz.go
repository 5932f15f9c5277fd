package entities

import "fmt"

// NoAnswer is the selected index recorded when a round expires without a choice.
const NoAnswer = -1

const noAnswerText = "[No Answer]"

// AnswerRecord is the outcome of one round. It is created once, when the round
// is finalized, and never changed afterward.
type AnswerRecord struct {
	Round         int        // zero-based round index
	QuestionID    QuestionID // id of the question played in the round
	QuestionText  string     // question text
	SelectedIndex int        // chosen option or NoAnswer
	SelectedText  string     // chosen option text, empty for NoAnswer
	CorrectIndex  int        // index of the correct option
	CorrectText   string     // text of the correct option
	IsCorrect     bool       // whether the chosen option is the correct one
}

// NewAnswerRecord builds the record for question q answered with selected.
func NewAnswerRecord(round int, q Question, selected int) AnswerRecord {
	correct := q.CorrectIndex()

	return AnswerRecord{
		Round:         round,
		QuestionID:    q.ID,
		QuestionText:  q.Question,
		SelectedIndex: selected,
		SelectedText:  q.Option(selected),
		CorrectIndex:  correct,
		CorrectText:   q.Option(correct),
		IsCorrect:     selected != NoAnswer && selected == correct,
	}
}

// Answered reports whether an option was chosen before the round ended.
func (r AnswerRecord) Answered() bool {
	return r.SelectedIndex >= 0
}

// ChosenText returns the chosen option text or the no-answer placeholder.
func (r AnswerRecord) ChosenText() string {
	if !r.Answered() {
		return noAnswerText
	}
	return r.SelectedText
}

// Mark returns ✓ for a correct answer and ✗ otherwise.
func (r AnswerRecord) Mark() string {
	if r.IsCorrect {
		return "✓"
	}
	return "✗"
}

// LogLine formats the record as an answer log entry, e.g. "Q3: Paris ✓".
func (r AnswerRecord) LogLine() string {
	return fmt.Sprintf("Q%d: %s %s", r.Round+1, r.ChosenText(), r.Mark())
}

// Results is the final summary of a finished session.
type Results struct {
	Answers      []AnswerRecord // records in round order
	TotalCorrect int            // number of correct records
	TotalRounds  int            // number of rounds in the session
}

// Score returns the fraction of correct rounds.
func (r Results) Score() float64 {
	if r.TotalRounds == 0 {
		return 0
	}
	return float64(r.TotalCorrect) / float64(r.TotalRounds)
}

// ScoreLine formats the score as "correct / total".
func (r Results) ScoreLine() string {
	return fmt.Sprintf("%d / %d", r.TotalCorrect, r.TotalRounds)
}
