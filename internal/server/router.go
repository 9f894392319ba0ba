package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"agency-backend/internal/config"
	"agency-backend/internal/handlers"
	"agency-backend/internal/middleware"
	"agency-backend/internal/models"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config     *config.Config
	Auth       *middleware.Auth
	AuthH      *handlers.AuthHandler
	Quotations *handlers.QuotationHandler
	Vouchers   *handlers.VoucherHandler
	Contracts  *handlers.ContractHandler
	Users      *handlers.UserHandler
	Settings   *handlers.SettingsHandler
	SMSLogs    *handlers.SMSLogHandler
	Dashboard  *handlers.DashboardHandler
	Health     *handlers.HealthHandler
}

// NewRouter mounts the full API surface. Everything under /api requires a
// valid token; user management, settings writes and log clearing are
// additionally admin-only.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	r.HandleFunc("/health", d.Health.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", d.AuthH.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", d.AuthH.Logout).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(d.Auth.RequireAuth)

	api.HandleFunc("/me", d.AuthH.Me).Methods(http.MethodGet)

	api.HandleFunc("/quotations", d.Quotations.List).Methods(http.MethodGet)
	api.HandleFunc("/quotations", d.Quotations.Create).Methods(http.MethodPost)
	api.HandleFunc("/quotations/{id}/status", d.Quotations.SetStatus).Methods(http.MethodPost)
	api.HandleFunc("/quotations/{id}", d.Quotations.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/vouchers", d.Vouchers.List).Methods(http.MethodGet)
	api.HandleFunc("/vouchers", d.Vouchers.Create).Methods(http.MethodPost)
	api.HandleFunc("/vouchers/settlements", d.Vouchers.Settle).Methods(http.MethodPost)
	api.HandleFunc("/vouchers/{id}", d.Vouchers.Update).Methods(http.MethodPut)
	api.HandleFunc("/vouchers/{id}", d.Vouchers.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/contracts", d.Contracts.List).Methods(http.MethodGet)
	api.HandleFunc("/contracts", d.Contracts.Create).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}", d.Contracts.Delete).Methods(http.MethodDelete)

	admin := func(h http.HandlerFunc) http.Handler {
		return d.Auth.RequireRole(models.RoleAdmin, h)
	}

	api.HandleFunc("/users", d.Users.List).Methods(http.MethodGet)
	api.Handle("/users", admin(d.Users.Create)).Methods(http.MethodPost)
	api.Handle("/users/{id}", admin(d.Users.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/settings", d.Settings.Get).Methods(http.MethodGet)
	api.Handle("/settings", admin(d.Settings.Update)).Methods(http.MethodPut)

	api.HandleFunc("/sms-logs", d.SMSLogs.List).Methods(http.MethodGet)
	api.Handle("/sms-logs", admin(d.SMSLogs.Clear)).Methods(http.MethodDelete)

	api.HandleFunc("/dashboard", d.Dashboard.Summary).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/advice", d.Dashboard.Advice).Methods(http.MethodGet)

	return corsFor(d.Config).Handler(r)
}

func corsFor(cfg *config.Config) *cors.Cors {
	origins := cfg.Server.CorsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.Server.CorsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	}
	headers := cfg.Server.CorsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Authorization", "Content-Type"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
	})
}
