package docxparser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenQuestion
	tokenOption
	tokenAnswer
)

func (k tokenKind) String() string {
	switch k {
	case tokenQuestion:
		return "question"
	case tokenOption:
		return "option"
	case tokenAnswer:
		return "answer"
	default:
		return "text"
	}
}

// token is one lexical unit of a flattened document.
//
//	tokenQuestion: number holds the question number
//	tokenOption:   letter holds 'A'..'D'
//	tokenAnswer:   text holds the raw answer value (a letter or digits)
//	tokenText:     text holds the free text between markers
type token struct {
	kind   tokenKind
	text   string
	number int
	letter byte
}

const (
	questionKeyword = "Question"
	answerKeyword   = "Answer:"
)

// tokenize splits text into markers and the free text between them. All markers
// are ASCII, so scanning bytes never lands inside a multi-byte rune.
func tokenize(text string) []token {
	var tokens []token
	start := 0
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, token{kind: tokenText, text: text[start:end]})
		}
	}

	for i := 0; i < len(text); {
		tok, n := matchMarker(text, i)
		if n == 0 {
			i++
			continue
		}
		flush(i)
		tokens = append(tokens, tok)
		i += n
		start = i
	}
	flush(len(text))
	return tokens
}

func matchMarker(text string, i int) (token, int) {
	if tok, n := matchQuestion(text, i); n > 0 {
		return tok, n
	}
	if tok, n := matchAnswer(text, i); n > 0 {
		return tok, n
	}
	return matchOption(text, i)
}

// matchQuestion recognises `Question<ws+><digits>:`.
func matchQuestion(text string, i int) (token, int) {
	if !strings.HasPrefix(text[i:], questionKeyword) {
		return token{}, 0
	}
	j := i + len(questionKeyword)
	k := skipSpace(text, j)
	if k == j {
		return token{}, 0
	}
	d := skipDigits(text, k)
	if d == k || d >= len(text) || text[d] != ':' {
		return token{}, 0
	}
	number, _ := strconv.Atoi(text[k:d])
	return token{kind: tokenQuestion, number: number}, d + 1 - i
}

// matchAnswer recognises `Answer:<ws*>` followed by a letter A-D (any case) or a
// run of decimal digits. The value is consumed with the marker.
func matchAnswer(text string, i int) (token, int) {
	if len(text)-i < len(answerKeyword) || !strings.EqualFold(text[i:i+len(answerKeyword)], answerKeyword) {
		return token{}, 0
	}
	j := skipSpace(text, i+len(answerKeyword))
	if j >= len(text) {
		return token{}, 0
	}
	if isAnswerLetter(text[j]) {
		return token{kind: tokenAnswer, text: text[j : j+1]}, j + 1 - i
	}
	d := skipDigits(text, j)
	if d == j {
		return token{}, 0
	}
	return token{kind: tokenAnswer, text: text[j:d]}, d - i
}

// matchOption recognises an uppercase `A)`..`D)` label.
func matchOption(text string, i int) (token, int) {
	if i+1 >= len(text) || text[i] < 'A' || text[i] > 'D' || text[i+1] != ')' {
		return token{}, 0
	}
	return token{kind: tokenOption, letter: text[i]}, 2
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func skipDigits(text string, i int) int {
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	return i
}

func isAnswerLetter(b byte) bool {
	return (b >= 'A' && b <= 'D') || (b >= 'a' && b <= 'd')
}
