package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatisticsID is the primary key of the singleton snapshot row.
const OrderStatisticsID int16 = 1

// OrderStatistics is the on-demand aggregate snapshot over all orders. It is
// recomputed wholesale, never maintained incrementally.
type OrderStatistics struct {
	ID            int16           `gorm:"column:id;primaryKey"`
	TotalOrders   int64           `gorm:"column:total_orders;not null;default:0"`
	TotalSales    decimal.Decimal `gorm:"column:total_sales;type:numeric(12,2);not null;default:0"`
	AverageCost   decimal.Decimal `gorm:"column:average_cost;type:numeric(10,2);not null;default:0"`
	LastOrderDate *time.Time      `gorm:"column:last_order_date;type:date"`
	RefreshedAt   time.Time       `gorm:"column:refreshed_at;not null"`
}

// TableName overrides GORM's pluralization.
func (OrderStatistics) TableName() string {
	return "order_statistics"
}
