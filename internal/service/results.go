package service

import (
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// Scoreboard accumulates answer records in round order.
type Scoreboard struct {
	records []entities.AnswerRecord
	correct int
}

// Record appends r.
func (b *Scoreboard) Record(r entities.AnswerRecord) {
	b.records = append(b.records, r)
	if r.IsCorrect {
		b.correct++
	}
}

// Len returns the number of recorded rounds.
func (b *Scoreboard) Len() int {
	return len(b.records)
}

// Correct returns the number of correct records so far.
func (b *Scoreboard) Correct() int {
	return b.correct
}

// Records returns a copy of the recorded rounds.
func (b *Scoreboard) Records() []entities.AnswerRecord {
	return append([]entities.AnswerRecord(nil), b.records...)
}

// Reset drops all records.
func (b *Scoreboard) Reset() {
	b.records = nil
	b.correct = 0
}

// Summarize builds the final results for a session of totalRounds rounds.
func (b *Scoreboard) Summarize(totalRounds int) entities.Results {
	return Summarize(b.records, totalRounds)
}

// Summarize counts correct records and copies them into a Results value.
func Summarize(records []entities.AnswerRecord, totalRounds int) entities.Results {
	correct := 0
	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
	}

	return entities.Results{
		Answers:      append([]entities.AnswerRecord(nil), records...),
		TotalCorrect: correct,
		TotalRounds:  totalRounds,
	}
}

// AnswerLog returns the answer log lines, newest first.
func AnswerLog(records []entities.AnswerRecord) []string {
	lines := make([]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		lines = append(lines, records[i].LogLine())
	}
	return lines
}
