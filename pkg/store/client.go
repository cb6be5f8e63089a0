// Package store mirrors crawl runs and their shop records into sqlite.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopscan/internal/models"
	"shopscan/pkg/config"
	"shopscan/pkg/logger"
)

// Client wraps the mirror database
type Client struct {
	db  *gorm.DB
	cfg *config.StoreConfig
}

// NewClient opens (creating if needed) the sqlite database and migrates the schema.
func NewClient(ctx context.Context, cfg *config.StoreConfig) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("%w: empty dsn", ErrConnectionFailed)
	}

	if path := dbPath(cfg.DSN); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
		}
	}

	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	// sqlite serializes writers anyway
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.CrawlRun{}, &models.ShopRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}

	logger.Info("Store opened", zap.String("dsn", cfg.DSN))
	return &Client{db: db, cfg: cfg}, nil
}

// Close releases the database handle
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dbPath returns the filesystem path behind a sqlite DSN, or "" for in-memory databases.
func dbPath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return path
}
