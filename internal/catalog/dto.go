package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
)

// OptionSummary is the catalog entry exposed over the API.
type OptionSummary struct {
	Kind  enums.OptionKind `json:"kind"`
	Name  string           `json:"name"`
	Price decimal.Decimal  `json:"price"`
}

// ToSummary maps a persisted option to its API shape.
func ToSummary(option models.CatalogOption) OptionSummary {
	return OptionSummary{
		Kind:  option.Kind,
		Name:  option.Name,
		Price: option.Price,
	}
}
