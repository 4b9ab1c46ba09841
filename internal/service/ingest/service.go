package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/database"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/resultstore"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/storage"
	"github.com/google/uuid"
)

const TemplateSheetName = "Employees"

type ingestServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	transactor   database.Transactor
	audit        ingest.AuditSink
	archive      storage.FileStorage
	results      *resultstore.Store[ingest.ImportResponse]
	rows         *RowValidator
	now          func() time.Time
}

// NewIngestService wires the import pipeline. audit and archive may be nil.
func NewIngestService(
	employeeRepo employee.EmployeeRepository,
	transactor database.Transactor,
	audit ingest.AuditSink,
	archive storage.FileStorage,
	results *resultstore.Store[ingest.ImportResponse],
	mode ingest.ValidationMode,
) ingest.ImportService {
	return &ingestServiceImpl{
		employeeRepo: employeeRepo,
		transactor:   transactor,
		audit:        audit,
		archive:      archive,
		results:      results,
		rows:         NewRowValidator(mode),
		now:          time.Now,
	}
}

// Import implements ingest.ImportService.
func (s *ingestServiceImpl) Import(ctx context.Context, req ingest.UploadRequest) (ingest.ImportResponse, error) {
	if err := req.Validate(); err != nil {
		return ingest.ImportResponse{}, err
	}

	batchID := uuid.NewString()
	if err := s.archiveUpload(ctx, batchID, req); err != nil {
		return ingest.ImportResponse{}, err
	}

	sheet, err := spreadsheet.Read(req.Filename, req.File)
	if err != nil {
		slog.Warn("Failed to read uploaded spreadsheet", "batch_id", batchID, "filename", req.Filename, "error", err)
		return ingest.ImportResponse{}, fmt.Errorf("%w: %v", ingest.ErrUnreadableFile, err)
	}

	rows := make([]ingest.RawRow, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		rows = append(rows, ingest.RawRow{Line: r.Line, Values: r.Values})
	}

	result, err := s.Process(ctx, ingest.Batch{
		ID:      batchID,
		Actor:   req.Actor,
		Columns: sheet.Columns,
		Rows:    rows,
	})
	if err != nil {
		return ingest.ImportResponse{}, err
	}

	resp := ingest.NewImportResponse(batchID, result)
	if s.results != nil {
		s.results.Save(batchID, resp)
	}
	return resp, nil
}

// Process implements ingest.ImportService.
func (s *ingestServiceImpl) Process(ctx context.Context, batch ingest.Batch) (ingest.BatchResult, error) {
	if missing := missingColumns(batch.Columns); len(missing) > 0 {
		slog.Warn("Employee import rejected", "batch_id", batch.ID, "missing_columns", missing)
		return ingest.BatchResult{}, &ingest.MissingColumnsError{Columns: missing}
	}

	now := s.now()
	result := ingest.BatchResult{Errors: []string{}}

	for _, row := range batch.Rows {
		emp, err := s.rows.Validate(row, now)
		if err != nil {
			s.fail(&result, batch.ID, ingest.RowFailure{Line: row.Line, Reason: Reason(err)})
			continue
		}

		err = s.store(ctx, emp)
		switch {
		case err == nil:
			result.Successful++
		case errors.Is(err, employee.ErrStorageUnavailable):
			slog.Error("Employee import aborted", "batch_id", batch.ID, "row", row.Line, "error", err)
			s.report(ctx, batch.ID, ingest.AuditEntry{
				Timestamp:   now,
				Actor:       batch.Actor,
				Result:      result,
				AbortReason: fmt.Sprintf("row %d: %v", row.Line, err),
			})
			return result, err
		default:
			s.fail(&result, batch.ID, ingest.RowFailure{Line: row.Line, Reason: persistenceReason(emp, err)})
		}
	}

	slog.Info("Employee import completed",
		"batch_id", batch.ID,
		"total", result.Total(),
		"successful", result.Successful,
		"failed", result.Failed,
	)
	s.report(ctx, batch.ID, ingest.AuditEntry{Timestamp: now, Actor: batch.Actor, Result: result})
	return result, nil
}

// TakeResult implements ingest.ImportService.
func (s *ingestServiceImpl) TakeResult(ctx context.Context, id string) (ingest.ImportResponse, error) {
	if s.results == nil || strings.TrimSpace(id) == "" {
		return ingest.ImportResponse{}, ingest.ErrResultNotFound
	}
	resp, ok := s.results.Take(id)
	if !ok {
		return ingest.ImportResponse{}, ingest.ErrResultNotFound
	}
	return resp, nil
}

// Template implements ingest.ImportService.
func (s *ingestServiceImpl) Template(ctx context.Context) ([]byte, error) {
	return spreadsheet.WriteTemplate(TemplateSheetName, ingest.RequiredColumns())
}

// store runs the existence check and the insert of one row in its own
// transaction.
func (s *ingestServiceImpl) store(ctx context.Context, emp employee.Employee) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.employeeRepo.ExistsByID(ctx, emp.ID)
		if err != nil {
			return err
		}
		if exists {
			return employee.ErrEmployeeIDExists
		}
		_, err = s.employeeRepo.Create(ctx, emp)
		return err
	})
}

func (s *ingestServiceImpl) fail(result *ingest.BatchResult, batchID string, failure ingest.RowFailure) {
	result.Failed++
	result.Errors = append(result.Errors, failure.Message())
	slog.Warn("Employee import row rejected", "batch_id", batchID, "row", failure.Line, "error", failure.Reason)
}

// archiveUpload copies the upload to file storage and rewinds it. Storage
// failures are logged only; a failed rewind makes the upload unreadable.
func (s *ingestServiceImpl) archiveUpload(ctx context.Context, batchID string, req ingest.UploadRequest) error {
	if s.archive == nil {
		return nil
	}

	key := path.Join("imports", s.now().UTC().Format("2006/01/02"), batchID+strings.ToLower(filepath.Ext(req.Filename)))
	if _, err := s.archive.Upload(ctx, req.File, key, req.ContentType); err != nil {
		slog.Warn("Failed to archive uploaded spreadsheet", "batch_id", batchID, "key", key, "error", err)
	}

	if _, err := req.File.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ingest.ErrUnreadableFile, err)
	}
	return nil
}

func missingColumns(columns []string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[strings.TrimSpace(c)] = struct{}{}
	}

	var missing []string
	for _, required := range ingest.RequiredColumns() {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}
	return missing
}

func persistenceReason(emp employee.Employee, err error) string {
	switch {
	case errors.Is(err, employee.ErrEmployeeIDExists):
		return fmt.Sprintf("Employee ID '%s' already exists.", emp.ID)
	case errors.Is(err, employee.ErrEmailExists):
		return fmt.Sprintf("Email ID '%s' already exists.", emp.Email)
	case errors.Is(err, employee.ErrPANExists):
		return fmt.Sprintf("PAN Number '%s' already exists.", emp.PAN)
	}
	return err.Error()
}
