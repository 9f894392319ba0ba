package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"agency-backend/internal/advisor"
	"agency-backend/internal/auth"
	"agency-backend/internal/backup"
	"agency-backend/internal/config"
	"agency-backend/internal/handlers"
	"agency-backend/internal/health"
	"agency-backend/internal/logger"
	"agency-backend/internal/middleware"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/server"
	"agency-backend/internal/services"
	"agency-backend/internal/sms"
	"agency-backend/internal/storage"
	"agency-backend/internal/store"
)

func main() {
	cfg := config.Load()
	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintln(os.Stderr, "logger setup:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		rc    *remote.Client
		local *storage.Local
		data  models.AppData
	)
	if cfg.RemoteEnabled() {
		rc = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey)
		log.Info().Str("baseURL", cfg.Remote.BaseURL).Msg("running in remote mode")
	} else {
		var err error
		local, err = storage.NewLocal(cfg.Storage.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Storage.DataDir).Msg("data dir unusable")
		}
		loaded, err := local.Load()
		if err != nil {
			log.Fatal().Err(err).Str("path", local.Path()).Msg("local data document unreadable")
		}
		data = loaded
		log.Info().Str("path", local.Path()).Msg("running in local mode")
	}

	st := store.New(data, local)

	jwtMgr := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpirationHours, cfg.JWT.Issuer)
	cache := auth.NewCache(cfg)
	session := auth.NewSession(st, rc, jwtMgr, cache)

	if rc != nil {
		if session.Resume(ctx) {
			st.Update(func(models.AppData) models.AppData { return rc.FetchAppData(ctx) })
		}
	}

	var provider sms.Provider
	if rc != nil {
		provider = sms.NewRemoteProvider(rc)
	} else {
		provider = sms.NewTwilioProvider(func() models.TwilioConfig {
			return st.Snapshot().Settings.Twilio
		})
	}

	notifier := services.NewNotifier(st, rc, provider)
	adv := advisor.New(cfg.Advisor.OpenAIKey, cfg.Advisor.Model)

	var onLogin func(ctx context.Context)
	if rc != nil {
		onLogin = func(ctx context.Context) {
			st.Update(func(models.AppData) models.AppData { return rc.FetchAppData(ctx) })
		}
	}

	authMW := middleware.NewAuth(session)
	router := server.NewRouter(server.Deps{
		Config:     cfg,
		Auth:       authMW,
		AuthH:      handlers.NewAuthHandler(session, onLogin),
		Quotations: handlers.NewQuotationHandler(services.NewQuotationService(st, rc, notifier)),
		Vouchers:   handlers.NewVoucherHandler(services.NewVoucherService(st, rc, notifier)),
		Contracts:  handlers.NewContractHandler(services.NewContractService(st, rc)),
		Users:      handlers.NewUserHandler(services.NewUserService(st, rc)),
		Settings:   handlers.NewSettingsHandler(services.NewSettingsService(st, rc)),
		SMSLogs:    handlers.NewSMSLogHandler(services.NewSMSLogService(st, rc)),
		Dashboard:  handlers.NewDashboardHandler(st, adv),
		Health:     handlers.NewHealthHandler(health.NewChecker(cfg.RemoteEnabled())),
	})

	if local != nil && cfg.Backup.Enabled {
		uploader, err := backup.NewUploader(cfg, local.Path())
		if err != nil {
			log.Warn().Err(err).Msg("backup disabled, uploader setup failed")
		} else {
			go uploader.Run(ctx)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
