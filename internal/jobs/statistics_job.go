package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/bakecake/bakecake-backend/internal/statistics"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

// StatisticsJob refreshes the aggregate order snapshot on a schedule. An
// empty order set is a normal state for a fresh installation, not a failure.
type StatisticsJob struct {
	stats statistics.Service
	logg  *logger.Logger
}

// NewStatisticsJob builds the snapshot refresh job.
func NewStatisticsJob(stats statistics.Service, logg *logger.Logger) (*StatisticsJob, error) {
	if stats == nil {
		return nil, fmt.Errorf("statistics service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &StatisticsJob{stats: stats, logg: logg}, nil
}

// Name identifies the job in logs and metrics.
func (j *StatisticsJob) Name() string {
	return "statistics_refresh"
}

// Run recomputes the snapshot.
func (j *StatisticsJob) Run(ctx context.Context) error {
	snapshot, err := j.stats.Recompute(ctx)
	if err != nil {
		if errors.Is(err, statistics.ErrNoOrders) {
			j.logg.Info(ctx, "no orders yet; skipping snapshot refresh")
			return nil
		}
		return err
	}
	j.logg.Info(j.logg.WithField(ctx, "total_orders", snapshot.TotalOrders), "snapshot refreshed")
	return nil
}
