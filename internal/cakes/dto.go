package cakes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/internal/catalog"
	"github.com/bakecake/bakecake-backend/pkg/db/models"
	"github.com/bakecake/bakecake-backend/pkg/enums"
)

// CreateCakeInput configures a new cake from catalog option names.
type CreateCakeInput struct {
	Kind        enums.CakeKind
	Level       string
	Shape       string
	Topping     *string
	Berries     []string
	Decor       []string
	Inscription *string
}

// OptionsInput replaces an existing cake's option selection.
type OptionsInput struct {
	Level       string
	Shape       string
	Topping     *string
	Berries     []string
	Decor       []string
	Inscription *string
}

// CakeDetail is the API representation of a priced cake.
type CakeDetail struct {
	ID          uuid.UUID                `json:"id"`
	Kind        enums.CakeKind           `json:"kind"`
	Level       catalog.OptionSummary    `json:"level"`
	Shape       catalog.OptionSummary    `json:"shape"`
	Topping     *catalog.OptionSummary   `json:"topping,omitempty"`
	Berries     []catalog.OptionSummary  `json:"berries"`
	Decor       []catalog.OptionSummary  `json:"decor"`
	Inscription *string                  `json:"inscription,omitempty"`
	Price       decimal.Decimal          `json:"price"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ToDetail maps a fully preloaded cake model to its API shape.
func ToDetail(cake *models.Cake) CakeDetail {
	detail := CakeDetail{
		ID:          cake.ID,
		Kind:        cake.Kind,
		Level:       catalog.ToSummary(cake.Level),
		Shape:       catalog.ToSummary(cake.Shape),
		Inscription: cake.Inscription,
		Price:       cake.Price,
		CreatedAt:   cake.CreatedAt,
		Berries:     make([]catalog.OptionSummary, 0, len(cake.Berries)),
		Decor:       make([]catalog.OptionSummary, 0, len(cake.Decor)),
	}
	if cake.Topping != nil {
		topping := catalog.ToSummary(*cake.Topping)
		detail.Topping = &topping
	}
	for _, berry := range cake.Berries {
		detail.Berries = append(detail.Berries, catalog.ToSummary(berry))
	}
	for _, decor := range cake.Decor {
		detail.Decor = append(detail.Decor, catalog.ToSummary(decor))
	}
	return detail
}
