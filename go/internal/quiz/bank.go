package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInsufficientQuestionBank is returned when a sample asks for more
// questions than the bank holds
var ErrInsufficientQuestionBank = errors.New("not enough questions in bank")

// Question is one quiz question. Fields beyond these are kept so that a
// bank can carry extra presentation data through to the client. ID, options
// and answer are passed through as the bank wrote them: banks use numeric
// and string ids alike.
type Question struct {
	ID       interface{}            `json:"id,omitempty" yaml:"id,omitempty"`
	Question string                 `json:"question" yaml:"question"`
	Options  []interface{}          `json:"options" yaml:"options"`
	Answer   interface{}            `json:"answer" yaml:"answer"`
	Extra    map[string]interface{} `json:"-" yaml:",inline"`
}

// Key returns the question id as a string, or "" when it has none
func (q Question) Key() string {
	if q.ID == nil {
		return ""
	}
	return fmt.Sprint(q.ID)
}

// MarshalJSON writes Extra alongside the known fields
func (q Question) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(q.Extra)+4)
	for k, v := range q.Extra {
		out[k] = v
	}
	if q.ID != nil {
		out["id"] = q.ID
	}
	out["question"] = q.Question
	out["options"] = q.Options
	out["answer"] = q.Answer
	return json.Marshal(out)
}

// UnmarshalJSON keeps unknown fields in Extra
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range []string{"id", "question", "options", "answer"} {
		delete(all, k)
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*q = Question(p)
	return nil
}

// Bank is an immutable set of questions
type Bank struct {
	questions []Question
}

// NewBank creates a bank over questions
func NewBank(questions []Question) *Bank {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Bank{questions: qs}
}

// LoadBank reads a question bank from a .json, .yaml or .yml file. A
// missing file yields an empty bank.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBank(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var questions []Question
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &questions)
	case ".json", "":
		err = json.Unmarshal(data, &questions)
	default:
		return nil, fmt.Errorf("unsupported question bank format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse question bank %s: %w", path, err)
	}

	return NewBank(questions), nil
}

// Len returns the number of questions in the bank
func (b *Bank) Len() int {
	return len(b.questions)
}

// Sample returns n distinct questions in random order. It never returns a
// partial sample.
func (b *Bank) Sample(n int) ([]Question, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid sample size %d", n)
	}
	if len(b.questions) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientQuestionBank, len(b.questions), n)
	}

	idx := rand.Perm(len(b.questions))[:n]
	out := make([]Question, n)
	for i, j := range idx {
		out[i] = b.questions[j]
	}
	return out, nil
}
