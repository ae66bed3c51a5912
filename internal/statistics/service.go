package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/pkg/config"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
	"github.com/bakecake/bakecake-backend/pkg/metrics"
)

// ErrNoOrders marks a recompute attempted over an empty order set.
var ErrNoOrders = errors.New("no orders to aggregate")

const cacheKeySnapshot = "statistics:snapshot"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// snapshotCache is the subset of the Redis client the service uses. The
// cache is best-effort: failures degrade to database reads.
type snapshotCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	CacheKey(parts ...string) string
}

// Service recomputes and serves the aggregate order snapshot.
type Service interface {
	Recompute(ctx context.Context) (*Snapshot, error)
	Latest(ctx context.Context) (*Snapshot, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	cache   snapshotCache
	cfg     config.StatisticsConfig
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// ServiceParams collects the statistics service dependencies. Cache is
// optional.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Cache   snapshotCache
	Config  config.StatisticsConfig
	Logger  *logger.Logger
	Metrics *metrics.OrderMetrics
	Now     func() time.Time
}

// NewService builds a statistics service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("statistics repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		cache:   params.Cache,
		cfg:     params.Config,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// Recompute scans all orders inside one transaction so the counts, sums and
// last order date describe the same set of rows, then persists the snapshot.
func (s *service) Recompute(ctx context.Context) (*Snapshot, error) {
	var row models.OrderStatistics

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		totals, err := repo.Aggregate(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate orders")
		}
		if totals.TotalOrders == 0 {
			return pkgerrors.Wrap(pkgerrors.CodeStateConflict, ErrNoOrders, "recompute statistics")
		}

		lastDate, err := repo.LastOrderDate(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find last order date")
		}

		row = models.OrderStatistics{
			TotalOrders:   totals.TotalOrders,
			TotalSales:    totals.TotalSales,
			AverageCost:   totals.TotalSales.DivRound(decimal.NewFromInt(totals.TotalOrders), 2),
			LastOrderDate: lastDate,
			RefreshedAt:   s.now(),
		}
		if err := repo.UpsertSnapshot(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist statistics snapshot")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncStatsRefresh()

	snapshot := ToSnapshot(&row)
	s.cacheSnapshot(ctx, &snapshot)
	s.logg.Info(s.logg.WithField(ctx, "total_orders", snapshot.TotalOrders), "statistics recomputed")
	return &snapshot, nil
}

// Latest serves the cached snapshot when available, falling back to the
// persisted row.
func (s *service) Latest(ctx context.Context) (*Snapshot, error) {
	if cached := s.cachedSnapshot(ctx); cached != nil {
		return cached, nil
	}

	row, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "statistics not yet computed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load statistics snapshot")
	}

	snapshot := ToSnapshot(row)
	s.cacheSnapshot(ctx, &snapshot)
	return &snapshot, nil
}

func (s *service) cachedSnapshot(ctx context.Context) *Snapshot {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(cacheKeySnapshot))
	if err != nil || raw == "" {
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *service) cacheSnapshot(ctx context.Context, snapshot *Snapshot) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey(cacheKeySnapshot), payload, s.cfg.CacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "statistics cache write failed")
	}
}
