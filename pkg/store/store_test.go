package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopscan/internal/models"
	"shopscan/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := &config.StoreConfig{Enabled: true, DSN: filepath.Join(t.TempDir(), "db", "shops.db")}
	c, err := NewClient(context.Background(), cfg)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDBPath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"data/shops.db", "data/shops.db"},
		{"file:data/shops.db?cache=shared", "data/shops.db"},
		{":memory:", ""},
		{"file::memory:?cache=shared", ""},
		{"file:x?mode=memory", ""},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, dbPath(tt.dsn))
		})
	}
}

func TestNewClientRejectsEmptyDSN(t *testing.T) {
	_, err := NewClient(context.Background(), &config.StoreConfig{})
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestRunLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	runID := uuid.NewString()

	run, err := c.StartRun(ctx, runID, "https://example.com/shops")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusRunning, run.Status)

	require.NoError(t, c.CompleteRun(ctx, run, RunResult{
		Clicks: 7, StopReason: "stagnated", Extracted: 10, Unique: 8, Classified: 6,
		Summary: []byte(`{"total":8}`),
	}))

	got, err := c.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, 8, got.Unique)
	assert.NotNil(t, got.CompletedAt)
	assert.JSONEq(t, `{"total":8}`, string(got.Summary))

	failed, err := c.StartRun(ctx, uuid.NewString(), "https://example.com/shops")
	require.NoError(t, err)
	require.NoError(t, c.FailRun(ctx, failed, errors.New("navigation timeout")))

	runs, err := c.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	_, err = c.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestUpsertShops(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	first := []models.Shop{
		{Name: "A", Address: "서울특별시 강남구 1", Category: "미용"},
		{Name: "B", Address: "부산광역시 해운대구 2"},
	}
	res, err := c.UpsertShops(ctx, "run-1", first)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalRecords)
	assert.Equal(t, 1, res.Batches)

	second := []models.Shop{
		{Name: "A", Address: "서울특별시 강남구 1", Category: "식당/카페", Country: "대한민국",
			ShopDetail: models.ShopDetail{Phone: "010-1234-5678"}},
		{Name: "C", Address: "Osu, Accra"},
	}
	_, err = c.UpsertShops(ctx, "run-2", second)
	require.NoError(t, err)

	shops, err := c.Shops(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 3)
	assert.Equal(t, "A", shops[0].Name)
	assert.Equal(t, "식당/카페", shops[0].Category, "later run overwrites mutable fields")
	assert.Equal(t, "대한민국", shops[0].Country)
	assert.Equal(t, "010-1234-5678", shops[0].Phone)
}

func TestUpsertShopsEmpty(t *testing.T) {
	c := newTestClient(t)

	res, err := c.UpsertShops(context.Background(), "run", nil)
	require.NoError(t, err)
	assert.Zero(t, res.Batches)
}
