package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

// DeliverySurcharge multiplies the base price for short-notice deliveries.
var DeliverySurcharge = decimal.RequireFromString("1.2")

// PriceInput carries everything an order price is computed from. Cakes may
// both be nil; the base price is then zero.
type PriceInput struct {
	StandardCake *models.Cake
	CustomCake   *models.Cake
	DeliveryDate time.Time
	SavedAt      time.Time
}

// PriceOrder sums the attached cake prices and applies the short-notice
// surcharge when delivery falls on the save day or the day after. Dates are
// compared at day granularity in the save timestamp's location.
func PriceOrder(input PriceInput) decimal.Decimal {
	base := decimal.Zero
	if input.StandardCake != nil {
		base = base.Add(input.StandardCake.Price)
	}
	if input.CustomCake != nil {
		base = base.Add(input.CustomCake.Price)
	}
	if SurchargeApplies(input.DeliveryDate, input.SavedAt) {
		return base.Mul(DeliverySurcharge)
	}
	return base
}

// SurchargeApplies reports whether deliveryDate falls inside the two-day
// short-notice window [savedAt's day, savedAt's day + 1]. Deliveries in the
// past carry no surcharge.
func SurchargeApplies(deliveryDate, savedAt time.Time) bool {
	today := truncateToDay(savedAt)
	delivery := truncateToDay(deliveryDate)
	return !delivery.Before(today) && !delivery.After(today.AddDate(0, 0, 1))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
