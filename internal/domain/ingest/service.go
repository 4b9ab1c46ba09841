package ingest

import "context"

// ImportService ingests employee spreadsheets.
type ImportService interface {
	// Import validates the upload, reads the sheet and processes every row. The
	// result is kept under the returned ID until TakeResult consumes it.
	Import(ctx context.Context, req UploadRequest) (ImportResponse, error)

	// Process runs the batch: column check, per-row validation, duplicate check
	// and one transaction per stored row.
	Process(ctx context.Context, batch Batch) (BatchResult, error)

	// TakeResult returns a stored result once.
	TakeResult(ctx context.Context, id string) (ImportResponse, error)

	// Template returns an empty .xlsx carrying the required header row.
	Template(ctx context.Context) ([]byte, error)
}

// AuditSink receives one formatted entry per upload attempt.
type AuditSink interface {
	Append(ctx context.Context, entry string) error
}
