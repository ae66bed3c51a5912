package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/pkg/config"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

type stubStatsRepo struct {
	prices    []decimal.Decimal
	lastDate  *time.Time
	snapshot  *models.OrderStatistics
	upserts   int
	aggCalled bool
}

func (s *stubStatsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubStatsRepo) Aggregate(ctx context.Context) (*Totals, error) {
	s.aggCalled = true
	total := decimal.Zero
	for _, price := range s.prices {
		total = total.Add(price)
	}
	return &Totals{TotalOrders: int64(len(s.prices)), TotalSales: total}, nil
}

func (s *stubStatsRepo) LastOrderDate(ctx context.Context) (*time.Time, error) {
	return s.lastDate, nil
}

func (s *stubStatsRepo) UpsertSnapshot(ctx context.Context, snapshot *models.OrderStatistics) error {
	s.upserts++
	stored := *snapshot
	s.snapshot = &stored
	return nil
}

func (s *stubStatsRepo) LatestSnapshot(ctx context.Context) (*models.OrderStatistics, error) {
	if s.snapshot == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.snapshot, nil
}

type stubCache struct {
	entries map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]string)}
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.entries[key] = string(value.([]byte))
	return nil
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if raw, ok := s.entries[key]; ok {
		return raw, nil
	}
	return "", errors.New("cache miss")
}

func (s *stubCache) CacheKey(parts ...string) string {
	return "bc:cache:" + parts[0]
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func prices(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.NewFromInt(v))
	}
	return out
}

func newStatsService(t *testing.T, repo *stubStatsRepo, cache *stubCache) Service {
	t.Helper()
	var c snapshotCache
	if cache != nil {
		c = cache
	}
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Tx:     passthroughTx{},
		Cache:  c,
		Config: config.StatisticsConfig{CacheTTL: time.Minute},
		Logger: testLogger(),
		Now:    func() time.Time { return time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func TestRecomputeAggregates(t *testing.T) {
	lastDate := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)
	repo := &stubStatsRepo{prices: prices(100, 200, 300), lastDate: &lastDate}
	svc := newStatsService(t, repo, nil)

	snapshot, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), snapshot.TotalOrders)
	assert.True(t, snapshot.TotalSales.Equal(decimal.NewFromInt(600)), "got %s", snapshot.TotalSales)
	assert.True(t, snapshot.AverageCost.Equal(decimal.NewFromInt(200)), "got %s", snapshot.AverageCost)
	require.NotNil(t, snapshot.LastOrderDate)
	assert.Equal(t, "2024-06-11", *snapshot.LastOrderDate)
	assert.Equal(t, 1, repo.upserts)
}

func TestRecomputeRoundsAverage(t *testing.T) {
	repo := &stubStatsRepo{prices: prices(100, 101)}
	svc := newStatsService(t, repo, nil)

	snapshot, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100.5", snapshot.AverageCost.String())
}

func TestRecomputeEmptyOrderSet(t *testing.T) {
	repo := &stubStatsRepo{}
	svc := newStatsService(t, repo, nil)

	_, err := svc.Recompute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoOrders))
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	assert.Zero(t, repo.upserts)
}

func TestLatestPrefersCache(t *testing.T) {
	repo := &stubStatsRepo{}
	cache := newStubCache()
	svc := newStatsService(t, repo, cache)

	cached := Snapshot{TotalOrders: 5, TotalSales: decimal.NewFromInt(1000), AverageCost: decimal.NewFromInt(200)}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	cache.entries[cache.CacheKey(cacheKeySnapshot)] = string(payload)

	snapshot, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), snapshot.TotalOrders)
	assert.False(t, repo.aggCalled)
}

func TestLatestFallsBackToDatabase(t *testing.T) {
	repo := &stubStatsRepo{snapshot: &models.OrderStatistics{
		ID:          models.OrderStatisticsID,
		TotalOrders: 2,
		TotalSales:  decimal.NewFromInt(500),
		AverageCost: decimal.NewFromInt(250),
		RefreshedAt: time.Now(),
	}}
	cache := newStubCache()
	svc := newStatsService(t, repo, cache)

	snapshot, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), snapshot.TotalOrders)
	// read-through populates the cache
	assert.Contains(t, cache.entries, cache.CacheKey(cacheKeySnapshot))
}

func TestLatestWithoutSnapshot(t *testing.T) {
	svc := newStatsService(t, &stubStatsRepo{}, nil)

	_, err := svc.Latest(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
