/*
Package handler provides the HTTP handlers and routing setup for the profilehub API.

This file defines the main Router, applying the shared middleware (CORS, request ids,
logging, panic recovery) and the per-route guards (rate limiting on the credential
endpoints, bearer authentication on the profile endpoints).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"profilehub/internal/pkg/auth/jwt"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/resp"
)

// Rate and burst for the per-IP limiter guarding /register and /login.
const (
	AuthRate  = 0.5
	AuthBurst = 10
)

// ServiceName is reported by the health endpoint.
const ServiceName = "profilehub"

// Router sets up the main HTTP routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	if deps.Config.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": ServiceName,
		})
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Group(func(public chi.Router) {
		if deps.AuthLimiter != nil {
			public.Use(deps.AuthLimiter.Middleware)
		}
		public.Post("/register", HandleRegister(deps))
		public.Post("/login", HandleLogin(deps))
	})

	r.Get("/uploads/{filename}", HandleServeImage(deps))

	r.Group(func(protected chi.Router) {
		protected.Use(jwt.RequireAuth(deps.Tokens))

		protected.Get("/profile", HandleGetProfile(deps))
		protected.Put("/profile", HandleUpdateProfile(deps))
		protected.Delete("/profile", HandleDeleteProfile(deps))

		protected.Post("/upload", HandleUploadProfileImage(deps))
		protected.Put("/profile/image", HandleUploadProfileImage(deps))
	})

	return r
}
