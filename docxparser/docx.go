package docxparser

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// TextExtractor flattens a document into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// DocxText extracts the raw text of a .docx file: one entry per paragraph or
// table, separated by blank lines. Run formatting is dropped.
type DocxText struct{}

func (DocxText) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	parts := make([]string, 0, len(doc.Document.Body.Items))
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			parts = append(parts, it.String())
		case *docx.Table:
			parts = append(parts, it.String())
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// Parser turns document bytes into questions.
type Parser struct {
	text TextExtractor
}

// NewParser returns a Parser reading .docx files.
func NewParser() *Parser {
	return &Parser{text: DocxText{}}
}

// NewParserWith returns a Parser using the given text extractor.
func NewParserWith(text TextExtractor) *Parser {
	return &Parser{text: text}
}

// Parse extracts the document text and the questions in it. It fails only when the
// text cannot be read, with a *DocumentReadError; a readable document without any
// recognisable question yields an empty list.
func (p *Parser) Parse(data []byte) ([]ParsedQuestion, error) {
	text, err := p.text.ExtractText(data)
	if err != nil {
		return nil, &DocumentReadError{Err: err}
	}
	return ExtractQuestions(text), nil
}

// ParseDocx parses .docx bytes with the default parser.
func ParseDocx(data []byte) ([]ParsedQuestion, error) {
	return NewParser().Parse(data)
}

// ParseFile reads and parses a .docx file from disk.
func ParseFile(path string) ([]ParsedQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDocx(data)
}
