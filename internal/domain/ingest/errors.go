package ingest

import (
	"errors"
	"strings"
)

var (
	ErrNoFile              = errors.New("no file part")
	ErrEmptyFilename       = errors.New("no selected file")
	ErrUnsupportedFileType = errors.New("invalid file type, only .xls and .xlsx files are allowed")
	ErrFileTooLarge        = errors.New("uploaded file exceeds the maximum allowed size")
	ErrUnreadableFile      = errors.New("error processing file")
	ErrResultNotFound      = errors.New("import result not found or already retrieved")
)

// MissingColumnsError aborts a batch before any row is processed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing columns: " + strings.Join(e.Columns, ", ")
}
