package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
	"github.com/cmlabs-hris/hris-employee-import/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-employee-import/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const (
	importFormField    = "file"
	templateFilename   = "employee_import_template.xlsx"
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	multipartMemory    = 8 << 20
	multipartOverhead  = 1 << 20
	defaultMaxFileSize = 10 << 20
)

type ImportHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	GetResult(w http.ResponseWriter, r *http.Request)
	DownloadTemplate(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importService ingest.ImportService
	maxFileSize   int64
}

func NewImportHandler(importService ingest.ImportService, maxFileSize int64) ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}
	return &importHandlerImpl{
		importService: importService,
		maxFileSize:   maxFileSize,
	}
}

// Import implements ImportHandler
func (h *importHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			response.HandleError(w, ingest.ErrFileTooLarge)
		case errors.Is(err, http.ErrNotMultipart):
			response.HandleError(w, ingest.ErrNoFile)
		default:
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fileHeader, err := r.FormFile(importFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, ingest.ErrNoFile)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxFileSize {
		response.HandleError(w, ingest.ErrFileTooLarge)
		return
	}

	req := ingest.UploadRequest{
		File:        file,
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Actor:       middleware.Actor(r.Context()),
	}

	result, err := h.importService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w,
		fmt.Sprintf("Processed %d records: %d successful, %d failed", result.TotalRecords, result.SuccessfulRecords, result.FailedRecords),
		result,
	)
}

// GetResult implements ImportHandler
func (h *importHandlerImpl) GetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Import result ID is required", nil)
		return
	}

	result, err := h.importService.TakeResult(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadTemplate implements ImportHandler
func (h *importHandlerImpl) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := h.importService.Template(r.Context())
	if err != nil {
		slog.Error("Failed to build import template", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, templateFilename, xlsxContentType, data)
}
