package docxparser

import (
	"strconv"
	"strings"
)

// ExtractQuestions recovers questions from flattened document text of the form
//
//	Question 1: <prompt>A) <opt>B) <opt>[C) <opt>D) <opt>]Answer: <letter|digits>Question 2: ...
//
// where nothing but the markers separates prompt, options and answer. Blocks that
// cannot be read completely are skipped; the rest are returned in document order.
func ExtractQuestions(text string) []ParsedQuestion {
	questions := []ParsedQuestion{}
	for _, block := range splitBlocks(tokenize(text)) {
		if q, ok := assemble(block); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// splitBlocks groups tokens by question header. Anything before the first header
// is preamble and dropped.
func splitBlocks(tokens []token) [][]token {
	var blocks [][]token
	for _, tok := range tokens {
		if tok.kind == tokenQuestion {
			blocks = append(blocks, []token{tok})
			continue
		}
		if len(blocks) == 0 {
			continue
		}
		last := len(blocks) - 1
		blocks[last] = append(blocks[last], tok)
	}
	return blocks
}

type blockState int

const (
	inPrompt blockState = iota
	inOptions
	answered
)

// assemble walks one block: header, prompt text, options, answer. Tokens after the
// first answer header are ignored.
func assemble(block []token) (ParsedQuestion, bool) {
	var (
		prompt  strings.Builder
		options []*strings.Builder
		answer  string
		state   = inPrompt
	)

	for _, tok := range block[1:] {
		if state == answered {
			break
		}
		switch tok.kind {
		case tokenText:
			if state == inPrompt {
				prompt.WriteString(tok.text)
			} else {
				options[len(options)-1].WriteString(tok.text)
			}
		case tokenOption:
			options = append(options, &strings.Builder{})
			state = inOptions
		case tokenAnswer:
			if state == inPrompt {
				return ParsedQuestion{}, false
			}
			answer = tok.text
			state = answered
		}
	}
	if state != answered {
		return ParsedQuestion{}, false
	}

	q := ParsedQuestion{Question: strings.TrimSpace(prompt.String())}
	for _, opt := range options {
		if text := strings.TrimSpace(opt.String()); text != "" {
			q.Options = append(q.Options, text)
		}
	}

	idx, ok := answerIndex(answer)
	if !ok {
		return ParsedQuestion{}, false
	}
	q.CorrectAnswer = idx

	if q.Question == "" || len(q.Options) < 2 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ParsedQuestion{}, false
	}
	return q, true
}

// answerIndex maps a letter to its alphabetic position (A=0) and takes digits as a
// literal zero-based index. "Answer: 2" therefore selects the third option while
// "Answer: B" selects the second.
func answerIndex(value string) (int, bool) {
	if len(value) == 1 && isAnswerLetter(value[0]) {
		return int(strings.ToUpper(value)[0] - 'A'), true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
