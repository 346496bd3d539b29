package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/analytics"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/config"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/customer"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
	restHttp "github.com/gbrl-pnhr/TrabalhoFinalBD/internal/handler/http"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/menu"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/order"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/review"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/staff"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/table"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/transport"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	setupLogger(cfg.App.Name, cfg.Log)
	log.Info().Msg("Restaurant service starting...")

	ctx := context.Background()

	pg, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pg.Close()

	if cfg.Postgres.Migrate {
		if err := pg.ApplyMigrations(); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	tx := db.NewTransactor(pg.Pool)

	menuRepository := menu.NewRepository(pg.Pool)
	tableRepository := table.NewRepository(pg.Pool)

	orderSvc := order.NewService(
		order.NewRepository(pg.Pool),
		order.NewItemRepository(pg.Pool),
		tableRepository,
		menuRepository,
		tx,
		order.WithKitchenAlertAfter(cfg.Kitchen.AlertAfter),
	)

	router := transport.NewRouter(log.Logger, cfg.App.APIPrefix, 30*time.Second,
		restHttp.NewHealthHandler(pg),
		restHttp.NewOrderHandler(orderSvc),
		restHttp.NewReviewHandler(review.NewService(review.NewRepository(pg.Pool), tx)),
		restHttp.NewMenuHandler(menu.NewService(menuRepository)),
		restHttp.NewCustomerHandler(customer.NewService(customer.NewRepository(pg.Pool))),
		restHttp.NewTableHandler(table.NewService(tableRepository)),
		restHttp.NewStaffHandler(staff.NewService(staff.NewRepository(pg.Pool))),
		restHttp.NewAnalyticsHandler(analytics.NewService(analytics.NewRepository(pg.SQLX()))),
	)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Str("prefix", cfg.App.APIPrefix).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Restaurant service stopped gracefully")
}

func setupLogger(service string, cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", service).Logger()
}
