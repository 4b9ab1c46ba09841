package ingest

import (
	"io"
	"strings"

	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/validator"
)

type UploadRequest struct {
	File        io.ReadSeeker
	Filename    string
	Size        int64
	ContentType string
	Actor       string
}

func (r *UploadRequest) Validate() error {
	if r.File == nil {
		return ErrNoFile
	}
	r.Filename = strings.TrimSpace(r.Filename)
	if validator.IsEmpty(r.Filename) {
		return ErrEmptyFilename
	}
	if !spreadsheet.AllowedExtension(r.Filename) {
		return ErrUnsupportedFileType
	}
	return nil
}

type ImportResponse struct {
	ID                string   `json:"id"`
	TotalRecords      int      `json:"total_records"`
	SuccessfulRecords int      `json:"successful_records"`
	FailedRecords     int      `json:"failed_records"`
	ErrorMessages     []string `json:"error_messages"`
}

func NewImportResponse(id string, result BatchResult) ImportResponse {
	messages := result.Errors
	if messages == nil {
		messages = []string{}
	}
	return ImportResponse{
		ID:                id,
		TotalRecords:      result.Total(),
		SuccessfulRecords: result.Successful,
		FailedRecords:     result.Failed,
		ErrorMessages:     messages,
	}
}
