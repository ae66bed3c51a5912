package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

// CreateOrderInput places an order for up to two cakes. Address defaults to
// the customer's address; OrderDate defaults to the current day.
type CreateOrderInput struct {
	UserID         uuid.UUID
	StandardCakeID *uuid.UUID
	CustomCakeID   *uuid.UUID
	Address        string
	OrderDate      *time.Time
	DeliveryDate   time.Time
	DeliveryTime   string
	Comment        string
}

// OrderDetail is the API representation of a placed order.
type OrderDetail struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	StandardCakeID *uuid.UUID      `json:"standard_cake_id,omitempty"`
	CustomCakeID   *uuid.UUID      `json:"custom_cake_id,omitempty"`
	Address        string          `json:"address"`
	OrderDate      string          `json:"order_date"`
	DeliveryDate   string          `json:"delivery_date"`
	DeliveryTime   string          `json:"delivery_time"`
	Comment        string          `json:"comment,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Surcharged     bool            `json:"surcharged"`
	CreatedAt      time.Time       `json:"created_at"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// ToDetail maps an order model to its API shape. Dates render as plain
// calendar days.
func ToDetail(order *models.Order) OrderDetail {
	var warnings []string
	if order.StandardCakeID == nil && order.CustomCakeID == nil {
		warnings = append(warnings, "order has no cakes attached")
	}
	return OrderDetail{
		ID:             order.ID,
		UserID:         order.UserID,
		StandardCakeID: order.StandardCakeID,
		CustomCakeID:   order.CustomCakeID,
		Address:        order.Address,
		OrderDate:      order.OrderDate.Format("2006-01-02"),
		DeliveryDate:   order.DeliveryDate.Format("2006-01-02"),
		DeliveryTime:   order.DeliveryTime,
		Comment:        order.Comment,
		Price:          order.Price,
		Surcharged:     order.Surcharged,
		CreatedAt:      order.CreatedAt,
		Warnings:       warnings,
	}
}

// Page is one cursor page of orders.
type Page struct {
	Orders     []OrderDetail `json:"orders"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ToPage maps a page of order models.
func ToPage(rows []models.Order, next string) Page {
	page := Page{Orders: make([]OrderDetail, 0, len(rows)), NextCursor: next}
	for i := range rows {
		page.Orders = append(page.Orders, ToDetail(&rows[i]))
	}
	return page
}
