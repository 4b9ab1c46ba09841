package ingest

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
)

const AnonymousActor = "Anonymous"

// FormatAuditEntry renders one upload attempt for the audit log. The entry
// ends with a blank line separating it from the next one.
func FormatAuditEntry(entry ingest.AuditEntry) string {
	actor := strings.TrimSpace(entry.Actor)
	if actor == "" {
		actor = AnonymousActor
	}

	var b strings.Builder
	b.WriteString("Upload Attempt: " + entry.Timestamp.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString("User: " + actor + "\n")
	b.WriteString("Total Records Processed: " + strconv.Itoa(entry.Result.Total()) + "\n")
	b.WriteString("Successful Records: " + strconv.Itoa(entry.Result.Successful) + "\n")
	b.WriteString("Failed Records: " + strconv.Itoa(entry.Result.Failed) + "\n")
	if entry.AbortReason != "" {
		b.WriteString("Aborted: " + entry.AbortReason + "\n")
	}
	if len(entry.Result.Errors) > 0 {
		b.WriteString("Errors:\n")
		b.WriteString(strings.Join(entry.Result.Errors, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// report appends the audit entry. A failing sink is logged and otherwise
// ignored.
func (s *ingestServiceImpl) report(ctx context.Context, batchID string, entry ingest.AuditEntry) {
	if s.audit == nil {
		return
	}
	// The entry is written even when the request context is already done.
	if err := s.audit.Append(context.WithoutCancel(ctx), FormatAuditEntry(entry)); err != nil {
		slog.Warn("Failed to write import audit entry", "batch_id", batchID, "error", err)
	}
}
