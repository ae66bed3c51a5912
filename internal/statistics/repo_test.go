package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  surname TEXT NOT NULL,
  address TEXT NOT NULL,
  phone_number TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  standard_cake_id TEXT,
  custom_cake_id TEXT,
  address TEXT NOT NULL,
  order_date DATETIME NOT NULL,
  delivery_date DATETIME NOT NULL,
  delivery_time TEXT NOT NULL,
  comment TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  surcharged BOOLEAN NOT NULL DEFAULT false,
  created_at DATETIME
);`
	stats := `
CREATE TABLE IF NOT EXISTS order_statistics (
  id INTEGER PRIMARY KEY,
  total_orders INTEGER NOT NULL DEFAULT 0,
  total_sales NUMERIC NOT NULL DEFAULT 0,
  average_cost NUMERIC NOT NULL DEFAULT 0,
  last_order_date DATETIME,
  refreshed_at DATETIME NOT NULL
);`
	for _, stmt := range []string{users, orders, stats} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedStatsUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		Name:        "Ana",
		Surname:     "Petrova",
		Address:     "12 Baker St",
		PhoneNumber: "+7999" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedStatsOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, orderDate time.Time, price int64) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:           uuid.New(),
		UserID:       userID,
		Address:      "12 Baker St",
		OrderDate:    orderDate,
		DeliveryDate: orderDate.AddDate(0, 0, 3),
		DeliveryTime: "14:00",
		Price:        decimal.NewFromInt(price),
		CreatedAt:    orderDate,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestAggregateCountsAndSums(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := seedStatsUser(t, db)

	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	seedStatsOrder(t, db, user.ID, day, 100)
	seedStatsOrder(t, db, user.ID, day.AddDate(0, 0, 1), 200)
	seedStatsOrder(t, db, user.ID, day.AddDate(0, 0, 2), 300)

	totals, err := repo.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.TotalOrders)
	assert.True(t, totals.TotalSales.Equal(decimal.NewFromInt(600)), "got %s", totals.TotalSales)
}

func TestAggregateEmptyTable(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)

	totals, err := repo.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.TotalOrders)
	assert.True(t, totals.TotalSales.IsZero())

	date, err := repo.LastOrderDate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, date)
}

func TestLastOrderDateSameDayTieIsStable(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := seedStatsUser(t, db)

	earlier := time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC)
	tied := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)
	seedStatsOrder(t, db, user.ID, earlier, 100)
	seedStatsOrder(t, db, user.ID, tied, 200)
	seedStatsOrder(t, db, user.ID, tied, 300)

	first, err := repo.LastOrderDate(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Equal(tied), "got %s", first)

	// Same-day orders rank by id, so repeated scans settle on one row.
	for i := 0; i < 5; i++ {
		again, err := repo.LastOrderDate(ctx)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.True(t, again.Equal(*first))
	}
}

func TestUpsertSnapshotKeepsSingletonRow(t *testing.T) {
	db := setupStatsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	refreshed := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)
	first := &models.OrderStatistics{
		TotalOrders: 2,
		TotalSales:  decimal.NewFromInt(500),
		AverageCost: decimal.NewFromInt(250),
		RefreshedAt: refreshed,
	}
	require.NoError(t, repo.UpsertSnapshot(ctx, first))

	second := &models.OrderStatistics{
		TotalOrders: 3,
		TotalSales:  decimal.NewFromInt(900),
		AverageCost: decimal.NewFromInt(300),
		RefreshedAt: refreshed.Add(time.Hour),
	}
	require.NoError(t, repo.UpsertSnapshot(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.OrderStatistics{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	latest, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest.TotalOrders)
	assert.True(t, latest.TotalSales.Equal(decimal.NewFromInt(900)))
}
