package controllers

import (
	"net/http"

	"github.com/bakecake/bakecake-backend/api/responses"
	statssvc "github.com/bakecake/bakecake-backend/internal/statistics"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

// GetStatistics serves the latest aggregate snapshot, cache-first.
func GetStatistics(svc statssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.Latest(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// RefreshStatistics recomputes the snapshot on demand.
func RefreshStatistics(svc statssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.Recompute(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
