package cakes

import (
	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
)

// InscriptionSurcharge is the flat fee for a non-empty cake inscription.
var InscriptionSurcharge = decimal.NewFromInt(500)

// QuoteInput carries the resolved options a cake price is computed from.
type QuoteInput struct {
	Level       *models.CatalogOption
	Shape       *models.CatalogOption
	Topping     *models.CatalogOption
	Berries     []models.CatalogOption
	Decor       []models.CatalogOption
	Inscription *string
}

// Quote computes a cake's price: level + shape + topping (if any) + every
// berry + every decor + the inscription surcharge. The sum is purely
// additive, so the order options were attached in never matters.
func Quote(input QuoteInput) (decimal.Decimal, error) {
	if input.Level == nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "cake level is required")
	}
	if input.Shape == nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "cake shape is required")
	}

	total := input.Level.Price.Add(input.Shape.Price)
	if input.Topping != nil {
		total = total.Add(input.Topping.Price)
	}
	for _, berry := range input.Berries {
		total = total.Add(berry.Price)
	}
	for _, decor := range input.Decor {
		total = total.Add(decor.Price)
	}
	if input.Inscription != nil && *input.Inscription != "" {
		total = total.Add(InscriptionSurcharge)
	}
	return total, nil
}
