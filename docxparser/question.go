package docxparser

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParsedQuestion is one multiple-choice question recovered from a document.
// CorrectAnswer is a zero-based index into Options.
type ParsedQuestion struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
}

// UnmarshalJSON accepts any whole number as the answer index.
func (q *ParsedQuestion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Question      string          `json:"question"`
		Options       []string        `json:"options"`
		CorrectAnswer json.RawMessage `json:"correctAnswer"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.Question = raw.Question
	q.Options = raw.Options
	if answer := bytes.TrimSpace(raw.CorrectAnswer); len(answer) > 0 && string(answer) != "null" {
		idx, ok := wholeNumber(answer)
		if !ok {
			return fmt.Errorf("docxparser: correctAnswer %s is not a whole number", answer)
		}
		q.CorrectAnswer = idx
	}
	return nil
}

// ValidationResult reports every problem found in a question list.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
