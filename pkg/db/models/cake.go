package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/enums"
)

// Cake is a priced composite of catalog options. Standard and custom cakes
// share this table, distinguished by Kind, so an order can reference one of
// each independently. Price is derived; see internal/cakes.
type Cake struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind        enums.CakeKind  `gorm:"column:kind;type:text;not null"`
	LevelID     uuid.UUID       `gorm:"column:level_id;type:uuid;not null"`
	Level       CatalogOption   `gorm:"foreignKey:LevelID"`
	ShapeID     uuid.UUID       `gorm:"column:shape_id;type:uuid;not null"`
	Shape       CatalogOption   `gorm:"foreignKey:ShapeID"`
	ToppingID   *uuid.UUID      `gorm:"column:topping_id;type:uuid"`
	Topping     *CatalogOption  `gorm:"foreignKey:ToppingID"`
	Berries     []CatalogOption `gorm:"many2many:cake_berries;constraint:OnDelete:CASCADE"`
	Decor       []CatalogOption `gorm:"many2many:cake_decor;constraint:OnDelete:CASCADE"`
	Inscription *string         `gorm:"column:inscription"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
