package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var missingCols *ingest.MissingColumnsError
	if errors.As(err, &missingCols) {
		UnprocessableEntity(w, missingCols.Error(), map[string]string{
			"missing_columns": strings.Join(missingCols.Columns, ", "),
		})
		return
	}

	switch {
	// Upload errors
	case errors.Is(err, ingest.ErrNoFile):
		BadRequest(w, "No file part", nil)
	case errors.Is(err, ingest.ErrEmptyFilename):
		BadRequest(w, "No selected file", nil)
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		BadRequest(w, "Invalid file type. Only .xls and .xlsx files are allowed", nil)
	case errors.Is(err, ingest.ErrFileTooLarge):
		PayloadTooLarge(w, "Uploaded file is too large")
	case errors.Is(err, ingest.ErrUnreadableFile):
		detail := strings.TrimPrefix(err.Error(), ingest.ErrUnreadableFile.Error())
		BadRequest(w, "Error processing file"+detail, nil)
	case errors.Is(err, ingest.ErrResultNotFound):
		NotFound(w, "Import result not found or already retrieved")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEmployeeID):
		BadRequest(w, "Employee ID must be alphanumeric", nil)
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrPANExists):
		Conflict(w, "PAN number already registered")
	case errors.Is(err, employee.ErrStorageUnavailable):
		ServiceUnavailable(w, "Employee storage is unavailable, please try again later")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
