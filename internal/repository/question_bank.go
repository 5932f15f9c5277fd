package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

var ErrUnsupportedFormat = errors.New("unsupported question bank format")

// Format is the encoding of a question bank file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension. Files without a known
// extension are read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// rawQuestion mirrors one question entry before validation. Options and
// answer stay untyped so a malformed entry only disqualifies itself.
type rawQuestion struct {
	ID       entities.QuestionID `json:"id" yaml:"id"`
	Question string              `json:"question" yaml:"question"`
	Options  any                 `json:"options" yaml:"options"`
	Answer   any                 `json:"answer" yaml:"answer"`
	Time     any                 `json:"time" yaml:"time"`
}

type rawBank map[string]map[string][]rawQuestion

// FileBankRepository loads a question bank from a JSON or YAML file laid out
// as course -> difficulty -> questions.
type FileBankRepository struct {
	path string
}

// NewFileBankRepository creates a new FileBankRepository reading path.
func NewFileBankRepository(path string) *FileBankRepository {
	return &FileBankRepository{path: path}
}

// LoadBank reads and parses the bank file.
func (r *FileBankRepository) LoadBank(ctx context.Context) (entities.Bank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	bank, err := ParseBank(data, FormatOf(r.path))
	if err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", r.path, err)
	}

	return bank, nil
}

// ParseBank decodes a bank document. Difficulty buckets other than easy,
// normal and hard are dropped. Questions are kept as read, including those
// that are not playable multiple-choice questions.
func ParseBank(data []byte, format Format) (entities.Bank, error) {
	var raw rawBank

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	bank := entities.Bank{}
	for course, buckets := range raw {
		for key, questions := range buckets {
			d, err := entities.ParseDifficulty(key)
			if err != nil {
				continue
			}
			for _, rq := range questions {
				bank.Add(course, d, rq.toQuestion())
			}
		}
	}

	return bank, nil
}

func (rq rawQuestion) toQuestion() entities.Question {
	q := entities.Question{
		ID:       rq.ID,
		Question: rq.Question,
		Options:  stringList(rq.Options),
	}
	if idx, ok := entities.AnswerIndex(rq.Answer); ok {
		q.Answer = idx
	}
	if secs, ok := seconds(rq.Time); ok {
		q.Time = secs
	}
	return q
}

// stringList returns v as a list of strings, or nil if it is not one.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func seconds(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, false
	}
	return f, f > 0
}
