package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/enums"
)

// CatalogOption is a named, priced cake ingredient. One table serves all
// five option kinds; price is derived from the static price tables and is
// never set by callers directly.
type CatalogOption struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.OptionKind `gorm:"column:kind;type:text;not null;uniqueIndex:idx_catalog_options_kind_name"`
	Name      string           `gorm:"column:name;not null;uniqueIndex:idx_catalog_options_kind_name"`
	Price     decimal.Decimal  `gorm:"column:price;type:numeric(6,2);not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (CatalogOption) TableName() string {
	return "catalog_options"
}
