package docxparser

import "errors"

// ErrDocumentRead matches any DocumentReadError via errors.Is.
var ErrDocumentRead = errors.New("failed to parse document")

// ErrEmptyDocument is returned by the text extractor for a zero-length buffer.
var ErrEmptyDocument = errors.New("empty document")

// DocumentReadError means the input bytes could not be turned into text.
type DocumentReadError struct {
	Err error
}

func (e *DocumentReadError) Error() string {
	if e.Err == nil {
		return ErrDocumentRead.Error()
	}
	return ErrDocumentRead.Error() + ": " + e.Err.Error()
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

func (e *DocumentReadError) Is(target error) bool {
	return target == ErrDocumentRead
}
