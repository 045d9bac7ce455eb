package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a terminal ingestion failure.
type ErrorKind string

const (
	KindUnsupportedFileType ErrorKind = "unsupported_file_type"
	KindParseError          ErrorKind = "parse_error"
)

// IngestError is a terminal failure for a whole upload. Nothing from the file
// is accepted when one is returned.
type IngestError struct {
	Kind    ErrorKind
	Message string
}

func (e *IngestError) Error() string {
	return e.Message
}

// Is matches any IngestError of the same kind, so callers can use
// errors.Is(err, ErrParse) regardless of the message.
func (e *IngestError) Is(target error) bool {
	t, ok := target.(*IngestError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnsupportedFileType = &IngestError{Kind: KindUnsupportedFileType, Message: "unsupported file type"}
	ErrParse               = &IngestError{Kind: KindParseError, Message: "invalid csv"}
)

func unsupportedFileType(fileName string) *IngestError {
	return &IngestError{
		Kind:    KindUnsupportedFileType,
		Message: fmt.Sprintf("unsupported file type %q: only .csv files are accepted", fileName),
	}
}

func parseError(err error) *IngestError {
	return &IngestError{Kind: KindParseError, Message: err.Error()}
}

// Service-level errors.
var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrNoFile          = errors.New("no file provided")
	ErrEmptyFile       = errors.New("empty file")
	ErrImportNotFound  = errors.New("import not found")
	ErrInvalidImportID = errors.New("invalid import id")
	ErrInvalidRequest  = errors.New("invalid request body")
)
