package statistics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bakecake/bakecake-backend/internal/repo"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

// Totals is the raw aggregate over all orders.
type Totals struct {
	TotalOrders int64
	TotalSales  decimal.Decimal
}

// Repository defines the aggregate queries and snapshot persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Aggregate(ctx context.Context) (*Totals, error)
	LastOrderDate(ctx context.Context) (*time.Time, error)
	UpsertSnapshot(ctx context.Context, snapshot *models.OrderStatistics) error
	LatestSnapshot(ctx context.Context) (*models.OrderStatistics, error)
}

type repository struct {
	base repo.Base
}

// NewRepository builds a statistics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) Aggregate(ctx context.Context) (*Totals, error) {
	var row struct {
		TotalOrders int64
		TotalSales  decimal.Decimal
	}
	err := r.base.DB(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(price), 0) AS total_sales").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &Totals{TotalOrders: row.TotalOrders, TotalSales: row.TotalSales}, nil
}

// LastOrderDate returns the order date of the most recent order, breaking
// same-day ties by id so repeated scans agree.
func (r *repository) LastOrderDate(ctx context.Context) (*time.Time, error) {
	var order models.Order
	err := r.base.DB(ctx).
		Order("order_date DESC, id DESC").
		Select("order_date").
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	date := order.OrderDate
	return &date, nil
}

func (r *repository) UpsertSnapshot(ctx context.Context, snapshot *models.OrderStatistics) error {
	snapshot.ID = models.OrderStatisticsID
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_orders", "total_sales", "average_cost", "last_order_date", "refreshed_at",
			}),
		}).
		Create(snapshot).Error
}

func (r *repository) LatestSnapshot(ctx context.Context) (*models.OrderStatistics, error) {
	var snapshot models.OrderStatistics
	err := r.base.DB(ctx).First(&snapshot, "id = ?", models.OrderStatisticsID).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
