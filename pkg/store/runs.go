package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shopscan/internal/models"
)

// RunResult carries the figures recorded when a run finishes
type RunResult struct {
	Clicks     int
	StopReason string
	Extracted  int
	Unique     int
	Classified int
	Summary    []byte // JSON encoded report
}

// StartRun records a new running crawl.
func (c *Client) StartRun(ctx context.Context, runID, targetURL string) (*models.CrawlRun, error) {
	run := &models.CrawlRun{
		RunID:     runID,
		TargetURL: targetURL,
		Status:    models.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := c.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("%w: create run %s: %w", ErrWriteFailed, runID, err)
	}
	return run, nil
}

// CompleteRun marks run as completed with res.
func (c *Client) CompleteRun(ctx context.Context, run *models.CrawlRun, res RunResult) error {
	now := time.Now().UTC()
	run.Status = models.RunStatusCompleted
	run.Clicks = res.Clicks
	run.StopReason = res.StopReason
	run.Extracted = res.Extracted
	run.Unique = res.Unique
	run.Classified = res.Classified
	if len(res.Summary) > 0 {
		run.Summary = datatypes.JSON(res.Summary)
	}
	run.CompletedAt = &now
	run.Duration = now.Sub(run.StartedAt).Milliseconds()

	if err := c.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("%w: complete run %s: %w", ErrWriteFailed, run.RunID, err)
	}
	return nil
}

// FailRun marks run as failed with cause.
func (c *Client) FailRun(ctx context.Context, run *models.CrawlRun, cause error) error {
	now := time.Now().UTC()
	run.Status = models.RunStatusFailed
	run.CompletedAt = &now
	run.Duration = now.Sub(run.StartedAt).Milliseconds()
	if cause != nil {
		run.ErrorMsg = cause.Error()
	}

	if err := c.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("%w: fail run %s: %w", ErrWriteFailed, run.RunID, err)
	}
	return nil
}

// GetRun loads a run by its run id.
func (c *Client) GetRun(ctx context.Context, runID string) (*models.CrawlRun, error) {
	var run models.CrawlRun
	err := c.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the most recent runs first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]models.CrawlRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []models.CrawlRun
	err := c.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
