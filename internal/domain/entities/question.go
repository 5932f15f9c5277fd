package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// QuestionID identifies a question inside a bank. Sources may store it as a
// number or as a string.
type QuestionID string

// UnmarshalJSON accepts both JSON strings and numbers.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = QuestionID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or a number: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

// Question is a multiple-choice question as stored in a question bank.
type Question struct {
	ID       QuestionID // question id from the source
	Question string     // question text
	Options  []string   // ordered option texts
	Answer   *int       // index of the correct option, nil when missing or not an integer
	Time     float64    // optional round duration override in seconds, 0 means default
}

// IsMCQ reports whether the question has the multiple-choice shape required for play.
func (q Question) IsMCQ() bool {
	if len(q.Options) == 0 || q.Answer == nil {
		return false
	}
	return *q.Answer >= 0 && *q.Answer < len(q.Options)
}

// CorrectIndex returns the answer index or NoAnswer if the question has none.
func (q Question) CorrectIndex() int {
	if q.Answer == nil {
		return NoAnswer
	}
	return *q.Answer
}

// Option returns the text of option i, or an empty string if i is out of range.
func (q Question) Option(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}

// Duration returns the round duration for the question: its own override if
// set, otherwise base.
func (q Question) Duration(base time.Duration) time.Duration {
	if q.Time > 0 {
		return time.Duration(q.Time * float64(time.Second))
	}
	return base
}

// AnswerIndex converts a decoded "answer" value into an option index.
// Only integral numbers are accepted.
func AnswerIndex(v any) (*int, bool) {
	var idx int

	switch n := v.(type) {
	case int:
		idx = n
	case int64:
		idx = int(n)
	case uint64:
		idx = int(n)
	case float64:
		if n != float64(int(n)) {
			return nil, false
		}
		idx = int(n)
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			idx = i
			break
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return nil, false
		}
		idx = int(f)
	default:
		return nil, false
	}

	return &idx, true
}

// Bank maps course names to difficulty buckets of questions.
type Bank map[string]map[Difficulty][]Question

// Add appends q to the course/difficulty bucket, creating it if needed.
func (b Bank) Add(course string, d Difficulty, q Question) {
	buckets, ok := b[course]
	if !ok {
		buckets = make(map[Difficulty][]Question)
		b[course] = buckets
	}
	buckets[d] = append(buckets[d], q)
}

// Questions returns the bucket for course and difficulty, or nil.
func (b Bank) Questions(course string, d Difficulty) []Question {
	return b[course][d]
}

// Courses returns the course names in sorted order.
func (b Bank) Courses() []string {
	courses := make([]string, 0, len(b))
	for c := range b {
		courses = append(courses, c)
	}
	sort.Strings(courses)
	return courses
}
