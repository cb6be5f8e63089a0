package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopscan/internal/models"
	"shopscan/pkg/logger"
)

// DefaultBatchSize is the number of rows per upsert statement
const DefaultBatchSize = 200

// UpsertResult summarizes one UpsertShops call
type UpsertResult struct {
	TotalRecords int           `json:"total_records"`
	Batches      int           `json:"batches"`
	Duration     time.Duration `json:"duration"`
}

// upsertColumns are overwritten when (name, address) already exists
var upsertColumns = []string{
	"category", "very_price", "payment_ratio", "link",
	"country", "state", "city", "last_run_id", "payload", "updated_at",
}

// UpsertShops writes shops keyed on (name, address), tagging every row with runID.
// All batches commit together or not at all.
func (c *Client) UpsertShops(ctx context.Context, runID string, shops []models.Shop) (*UpsertResult, error) {
	start := time.Now()
	res := &UpsertResult{TotalRecords: len(shops)}
	if len(shops) == 0 {
		return res, nil
	}

	rows := make([]models.ShopRow, 0, len(shops))
	for _, s := range shops {
		payload, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("%w: encode %q: %w", ErrWriteFailed, s.Name, err)
		}
		rows = append(rows, models.ShopRow{
			Name:         s.Name,
			Address:      s.Address,
			Category:     s.Category,
			VeryPrice:    s.VeryPrice,
			PaymentRatio: s.PaymentRatio,
			Link:         s.Link,
			Country:      s.Country,
			State:        s.State,
			City:         s.City,
			LastRunID:    runID,
			Payload:      datatypes.JSON(payload),
		})
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < len(rows); i += DefaultBatchSize {
			end := min(i+DefaultBatchSize, len(rows))
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}, {Name: "address"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			}).Create(rows[i:end]).Error
			if err != nil {
				return err
			}
			res.Batches++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upsert shops: %w", ErrWriteFailed, err)
	}

	res.Duration = time.Since(start)
	logger.FromContext(ctx).Info("Mirrored shops to store",
		logger.CountField(res.TotalRecords),
		zap.Int("batches", res.Batches),
		logger.DurationField(res.Duration.Milliseconds()))
	return res, nil
}

// Shops returns every mirrored shop in insertion order, detail fields included.
func (c *Client) Shops(ctx context.Context) ([]models.Shop, error) {
	var rows []models.ShopRow
	if err := c.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Shop, len(rows))
	for i, r := range rows {
		out[i] = r.ToShop()
	}
	return out, nil
}
