package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// RunStatus represents the status of a crawl run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// CrawlRun records one execution of the pipeline in the mirror database
type CrawlRun struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RunID       string         `gorm:"uniqueIndex;not null" json:"run_id"` // UUID
	TargetURL   string         `json:"target_url"`
	Status      RunStatus      `gorm:"default:running" json:"status"`
	Clicks      int            `json:"clicks"`
	StopReason  string         `json:"stop_reason"`
	Extracted   int            `json:"extracted"`
	Unique      int            `json:"unique"`
	Classified  int            `json:"classified"`
	Summary     datatypes.JSON `json:"summary"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	Duration    int64          `json:"duration"` // Duration in milliseconds
	ErrorMsg    string         `json:"error_msg"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName returns the table name for CrawlRun model
func (CrawlRun) TableName() string {
	return "crawl_runs"
}

// ShopRow is the mirrored form of a Shop, unique on (name, address)
type ShopRow struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"uniqueIndex:idx_shop_identity;not null" json:"name"`
	Address      string         `gorm:"uniqueIndex:idx_shop_identity;not null" json:"address"`
	Category     string         `gorm:"index" json:"category"`
	VeryPrice    string         `json:"very_price"`
	PaymentRatio string         `json:"payment_ratio"`
	Link         string         `json:"link"`
	Country      string         `gorm:"index" json:"country"`
	State        string         `gorm:"index" json:"state"`
	City         string         `json:"city"`
	LastRunID    string         `gorm:"index" json:"last_run_id"`
	Payload      datatypes.JSON `json:"payload"` // Shop as written to the dataset
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName returns the table name for ShopRow model
func (ShopRow) TableName() string {
	return "shops"
}

// ToShop converts the row back to a Shop. Detail fields live only in the payload.
func (r ShopRow) ToShop() Shop {
	var full Shop
	if len(r.Payload) > 0 {
		_ = json.Unmarshal(r.Payload, &full)
	}
	return Shop{
		Name:         r.Name,
		Address:      r.Address,
		Category:     r.Category,
		VeryPrice:    r.VeryPrice,
		PaymentRatio: r.PaymentRatio,
		Link:         r.Link,
		Country:      r.Country,
		State:        r.State,
		City:         r.City,
		ShopDetail:   full.ShopDetail,
	}
}
