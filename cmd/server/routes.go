package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "voltid/internal/auth/handler"
	kychandler "voltid/internal/kyc/handler"
	paymenthandler "voltid/internal/payment/handler"
	"voltid/internal/platform/config"
	"voltid/internal/platform/metrics"
	rlmiddleware "voltid/internal/ratelimit/middleware"
	tenanthandler "voltid/internal/tenant/handler"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/platform/middleware/admin"
	"voltid/pkg/platform/middleware/auth"
	"voltid/pkg/platform/middleware/metadata"
	"voltid/pkg/platform/middleware/request"
	"voltid/pkg/platform/middleware/requesttime"
)

func newRouter(cfg config.Config, in *infra, a *app, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(metrics.New(in.registry).Middleware)

	r.Get("/healthz", healthHandler(in))
	r.Handle("/metrics", promhttp.HandlerFor(in.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(cfg.Server.RequestTimeout))
		r.Use(request.ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(rlmiddleware.New(a.byIP, log).ByIP)
			authhandler.New(a.auth, log).Register(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.tokens, log))
			kychandler.New(a.kyc, log).Register(r)
			paymenthandler.New(a.payment, log).Register(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(cfg.Server.AdminToken, log))
			tenanthandler.New(a.tenant, log).Register(r)
		})
	})
	return r
}

func healthHandler(in *infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := in.Health(ctx); err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "dependency unavailable"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
