package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bakecake/bakecake-backend/api/responses"
	"github.com/bakecake/bakecake-backend/api/validators"
	usersvc "github.com/bakecake/bakecake-backend/internal/users"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

type createUserRequest struct {
	Name        string `json:"name" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,min=5"`
}

// CreateUser registers a new customer.
func CreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Create(r.Context(), usersvc.CreateUserInput{
			Name:        payload.Name,
			Surname:     payload.Surname,
			Address:     payload.Address,
			PhoneNumber: payload.PhoneNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, usersvc.ToDetail(user))
	}
}

// GetUser fetches one customer by id.
func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, usersvc.ToDetail(user))
	}
}
