package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-api/internal/api"
	"salon-api/internal/auth"
	"salon-api/internal/config"
	"salon-api/internal/db"
	"salon-api/internal/models"
	"salon-api/internal/resource"
	"salon-api/internal/theme"
	"salon-api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	themes := theme.NewService(resource.NewRepository[models.Theme](cols.Themes, "theme"), logger)
	if _, err := themes.EnsureDefault(ctx); err != nil {
		logger.Error("theme initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.Deps{
		Appointments:    resource.NewRepository[models.Appointment](cols.Appointments, "appointment"),
		Services:        resource.NewRepository[models.Service](cols.Services, "service"),
		ContactRequests: resource.NewRepository[models.ContactRequest](cols.ContactRequests, "contact request"),
		Emails:          resource.NewRepository[models.Email](cols.Emails, "email"),
		Theme:           themes,
		Validator:       validation.New(),
		Auth: &auth.Manager{
			Secret:    []byte(cfg.AccessTokenSecret),
			AccessTTL: cfg.AccessTTL(),
			Issuer:    cfg.TokenIssuer,
		},
		Log:             logger,
		FrontendOrigins: cfg.FrontendOrigins,
		RequestTimeout:  cfg.RequestTimeout(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
