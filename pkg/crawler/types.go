package crawler

import (
	"context"
	"time"

	"shopscan/internal/models"
	"shopscan/pkg/pager"
	"shopscan/pkg/report"
	"shopscan/pkg/store"
)

// Result summarizes one pipeline run
type Result struct {
	RunID       string           `json:"run_id"`
	Source      string           `json:"source"` // target URL or snapshot file
	Clicks      int              `json:"clicks"`
	StopReason  pager.StopReason `json:"stop_reason,omitempty"`
	Extracted   int              `json:"extracted"`  // records before dedup
	Unique      int              `json:"unique"`     // records written
	Classified  int              `json:"classified"` // records with a country
	Detailed    int              `json:"detailed"`   // records filled from their own page
	DatasetPath string           `json:"dataset_path"`
	Summary     *report.Summary  `json:"summary,omitempty"`
	Shops       []models.Shop    `json:"-"`
	StartedAt   time.Time        `json:"started_at"`
	Duration    time.Duration    `json:"duration"`
}

// Mirror persists runs and records besides the dataset file. *store.Client
// implements it.
type Mirror interface {
	StartRun(ctx context.Context, runID, targetURL string) (*models.CrawlRun, error)
	CompleteRun(ctx context.Context, run *models.CrawlRun, res store.RunResult) error
	FailRun(ctx context.Context, run *models.CrawlRun, cause error) error
	UpsertShops(ctx context.Context, runID string, shops []models.Shop) (*store.UpsertResult, error)
}
