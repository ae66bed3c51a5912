package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/bakecake/bakecake-backend/api/responses"
	"github.com/bakecake/bakecake-backend/pkg/config"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

const envHeader = "X-BakeCake-Env"

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes every backing dependency and reports all failures at
// once rather than the first one hit.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		var probeErr error
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				probeErr = multierr.Append(probeErr, err)
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				probeErr = multierr.Append(probeErr, err)
			}
		}
		if probeErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "readiness probe failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
