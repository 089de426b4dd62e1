package main

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/account-service/internal/account"
	"github.com/crucial707/account-service/internal/auth"
	"github.com/crucial707/account-service/internal/config"
	"github.com/crucial707/account-service/internal/handlers"
	"github.com/crucial707/account-service/internal/middleware"
	"github.com/crucial707/account-service/internal/repo"
	"github.com/crucial707/account-service/internal/respond"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the account endpoints over the given store.
func newRouter(users repo.UserStore, cfg config.Config, log *slog.Logger) http.Handler {
	tokens := auth.NewTokenService(auth.Policy{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
		Issuer: cfg.JWTIssuer,
	})
	accounts := account.NewService(users, auth.NewPasswordHasher(), tokens, log)

	authHandler := &handlers.AuthHandler{Accounts: accounts, Log: log}
	userHandler := &handlers.UserHandler{Accounts: accounts, Log: log}
	limiter := middleware.NewAuthRateLimiter(cfg.AuthRatePerMinute)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, respond.CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	// ==========================
	// Public account routes
	// ==========================
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))
		r.Use(limiter.Middleware)
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// ==========================
	// Protected routes
	// ==========================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Get("/me", userHandler.Me)
	})

	return r
}
