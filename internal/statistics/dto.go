package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

// Snapshot is the API and cache representation of the aggregate row.
type Snapshot struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	LastOrderDate *string         `json:"last_order_date,omitempty"`
	RefreshedAt   time.Time       `json:"refreshed_at"`
}

// ToSnapshot maps the persisted aggregate row. Last order date renders as a
// plain calendar day.
func ToSnapshot(stats *models.OrderStatistics) Snapshot {
	snapshot := Snapshot{
		TotalOrders: stats.TotalOrders,
		TotalSales:  stats.TotalSales,
		AverageCost: stats.AverageCost,
		RefreshedAt: stats.RefreshedAt,
	}
	if stats.LastOrderDate != nil {
		date := stats.LastOrderDate.Format("2006-01-02")
		snapshot.LastOrderDate = &date
	}
	return snapshot
}
