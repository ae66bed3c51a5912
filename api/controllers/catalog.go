package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakecake/bakecake-backend/api/responses"
	catalogsvc "github.com/bakecake/bakecake-backend/internal/catalog"
	"github.com/bakecake/bakecake-backend/pkg/enums"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

// ListCatalog returns every priced option grouped in one flat list.
func ListCatalog(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"options": options})
	}
}

// ListCatalogKind returns the priced options of a single kind.
func ListCatalogKind(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := enums.OptionKind(chi.URLParam(r, "kind"))

		options, err := svc.ListKind(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"kind": kind, "options": options})
	}
}
