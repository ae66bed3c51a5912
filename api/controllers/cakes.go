package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bakecake/bakecake-backend/api/responses"
	"github.com/bakecake/bakecake-backend/api/validators"
	cakesvc "github.com/bakecake/bakecake-backend/internal/cakes"
	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

type createCakeRequest struct {
	Kind        string   `json:"kind" validate:"required,oneof=standard custom"`
	Level       string   `json:"level" validate:"required"`
	Shape       string   `json:"shape" validate:"required"`
	Topping     *string  `json:"topping,omitempty"`
	Berries     []string `json:"berries,omitempty" validate:"omitempty,dive,required"`
	Decor       []string `json:"decor,omitempty" validate:"omitempty,dive,required"`
	Inscription *string  `json:"inscription,omitempty"`
}

type cakeOptionsRequest struct {
	Level       string   `json:"level" validate:"required"`
	Shape       string   `json:"shape" validate:"required"`
	Topping     *string  `json:"topping,omitempty"`
	Berries     []string `json:"berries,omitempty" validate:"omitempty,dive,required"`
	Decor       []string `json:"decor,omitempty" validate:"omitempty,dive,required"`
	Inscription *string  `json:"inscription,omitempty"`
}

// CreateCake configures a new cake and finalizes its price.
func CreateCake(svc cakesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCakeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cake, err := svc.Create(r.Context(), cakesvc.CreateCakeInput{
			Kind:        enums.CakeKind(payload.Kind),
			Level:       payload.Level,
			Shape:       payload.Shape,
			Topping:     payload.Topping,
			Berries:     payload.Berries,
			Decor:       payload.Decor,
			Inscription: payload.Inscription,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cakesvc.ToDetail(cake))
	}
}

// GetCake fetches one cake with its resolved option sets.
func GetCake(svc cakesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cake id"))
			return
		}

		cake, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cakesvc.ToDetail(cake))
	}
}

// ReplaceCakeOptions swaps the cake's option sets and refinalizes the price.
func ReplaceCakeOptions(svc cakesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cake id"))
			return
		}

		var payload cakeOptionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cake, err := svc.ReplaceOptions(r.Context(), id, cakesvc.OptionsInput{
			Level:       payload.Level,
			Shape:       payload.Shape,
			Topping:     payload.Topping,
			Berries:     payload.Berries,
			Decor:       payload.Decor,
			Inscription: payload.Inscription,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cakesvc.ToDetail(cake))
	}
}
