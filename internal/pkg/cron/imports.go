package cron

import (
	"context"
	"log/slog"
	"time"
)

// ResultPruner drops expired import results.
type ResultPruner interface {
	Prune() int
	Len() int
}

type ImportJobs struct {
	results  ResultPruner
	interval time.Duration
}

func NewImportJobs(results ResultPruner, interval time.Duration) *ImportJobs {
	return &ImportJobs{
		results:  results,
		interval: interval,
	}
}

func (j *ImportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_import_results", j.interval, j.PruneImportResults)
}

// PruneImportResults removes results nobody collected before they expired.
func (j *ImportJobs) PruneImportResults(ctx context.Context) error {
	if removed := j.results.Prune(); removed > 0 {
		slog.Info("Cron: Pruned expired import results", "count", removed, "pending", j.results.Len())
	}
	return nil
}
