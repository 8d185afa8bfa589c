package docxparser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const noQuestionsFound = "No questions found"

// record is the shape-agnostic view the checks run on, so typed questions and
// hand-edited JSON share one set of rules.
type record struct {
	question    string
	optionCount int
	answer      int
	answerIsInt bool
	answerText  string
}

// ValidateQuestions re-checks a question list, typically one that was edited after
// extraction. Messages use 1-based question numbers.
func ValidateQuestions(questions []ParsedQuestion) ValidationResult {
	records := make([]record, len(questions))
	for i, q := range questions {
		records[i] = record{
			question:    q.Question,
			optionCount: len(q.Options),
			answer:      q.CorrectAnswer,
			answerIsInt: true,
			answerText:  strconv.Itoa(q.CorrectAnswer),
		}
	}
	return check(records)
}

// ValidateQuestionsJSON validates a raw JSON question list without trusting its
// shape: wrong types are reported as the corresponding violation.
func ValidateQuestionsJSON(data []byte) ValidationResult {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return invalid(noQuestionsFound)
	}

	records := make([]record, len(items))
	for i, item := range items {
		records[i] = looseRecord(item)
	}
	return check(records)
}

func looseRecord(item json.RawMessage) record {
	var fields struct {
		Question      json.RawMessage `json:"question"`
		Options       json.RawMessage `json:"options"`
		CorrectAnswer json.RawMessage `json:"correctAnswer"`
	}
	var r record
	r.answerText = "missing"
	if err := json.Unmarshal(item, &fields); err != nil {
		return r
	}

	_ = json.Unmarshal(fields.Question, &r.question)

	var options []json.RawMessage
	if err := json.Unmarshal(fields.Options, &options); err == nil {
		r.optionCount = len(options)
	}

	if raw := bytes.TrimSpace(fields.CorrectAnswer); len(raw) > 0 {
		r.answerText = string(raw)
		r.answer, r.answerIsInt = wholeNumber(raw)
	}
	return r
}

// wholeNumber returns the value of a JSON number without a fractional part,
// so 1, 1.0 and 1e0 all name the same option.
func wholeNumber(raw []byte) (int, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func check(records []record) ValidationResult {
	if len(records) == 0 {
		return invalid(noQuestionsFound)
	}

	errs := []string{}
	for i, r := range records {
		n := i + 1
		if strings.TrimSpace(r.question) == "" {
			errs = append(errs, fmt.Sprintf("Question %d: Missing question text", n))
		}
		if r.optionCount < 2 {
			errs = append(errs, fmt.Sprintf("Question %d: Must have at least 2 options", n))
		}
		if !r.answerIsInt || r.answer < 0 || r.answer >= r.optionCount {
			errs = append(errs, fmt.Sprintf("Question %d: Invalid correct answer index (%s)", n, r.answerText))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Errors: []string{msg}}
}
