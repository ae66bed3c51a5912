package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bakecake/bakecake-backend/api/responses"
	"github.com/bakecake/bakecake-backend/api/validators"
	ordersvc "github.com/bakecake/bakecake-backend/internal/orders"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type createOrderRequest struct {
	UserID         string  `json:"user_id" validate:"required,uuid"`
	StandardCakeID *string `json:"standard_cake_id,omitempty" validate:"omitempty,uuid"`
	CustomCakeID   *string `json:"custom_cake_id,omitempty" validate:"omitempty,uuid"`
	Address        string  `json:"address,omitempty"`
	OrderDate      *string `json:"order_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate   string  `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	DeliveryTime   string  `json:"delivery_time" validate:"required,datetime=15:04"`
	Comment        string  `json:"comment,omitempty"`
}

func (p createOrderRequest) toInput() (ordersvc.CreateOrderInput, error) {
	input := ordersvc.CreateOrderInput{
		Address:      p.Address,
		DeliveryTime: p.DeliveryTime,
		Comment:      p.Comment,
	}

	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	input.UserID = userID

	if p.StandardCakeID != nil {
		id, err := uuid.Parse(*p.StandardCakeID)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid standard cake id")
		}
		input.StandardCakeID = &id
	}
	if p.CustomCakeID != nil {
		id, err := uuid.Parse(*p.CustomCakeID)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid custom cake id")
		}
		input.CustomCakeID = &id
	}

	deliveryDate, err := time.Parse(dateLayout, p.DeliveryDate)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery date")
	}
	input.DeliveryDate = deliveryDate

	if p.OrderDate != nil {
		orderDate, err := time.Parse(dateLayout, *p.OrderDate)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order date")
		}
		input.OrderDate = &orderDate
	}

	return input, nil
}

// CreateOrder places an order.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ordersvc.ToDetail(order))
	}
}

// GetOrder fetches one order.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ordersvc.ToDetail(order))
	}
}

// ListOrders walks orders newest-first with cursor pagination. An optional
// user_id query filters to one customer.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userFilter := r.URL.Query().Get("user_id")
		if userFilter != "" {
			userID, err := uuid.Parse(userFilter)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}
			rows, next, err := svc.ListByUser(r.Context(), userID, params)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, ordersvc.ToPage(rows, next))
			return
		}

		rows, next, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersvc.ToPage(rows, next))
	}
}
