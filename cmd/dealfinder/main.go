// Package main is the entry point for the flight deal finder.
// Its sole responsibility is wiring dependencies together and running one
// deal-finding pass. No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rpalmeida/flight-deals/internal/amadeus"
	"github.com/rpalmeida/flight-deals/internal/config"
	"github.com/rpalmeida/flight-deals/internal/notify"
	"github.com/rpalmeida/flight-deals/internal/service"
	"github.com/rpalmeida/flight-deals/internal/sheets"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is a convenience for local runs; its absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler writes machine-readable output suitable
	// for log aggregators. Every line of a pass carries the same run_id, so
	// one scheduled invocation can be filtered out of interleaved history.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	// --- Signals ----------------------------------------------------------
	// The pass is sequential, so cancellation takes effect between remote
	// calls rather than interrupting one.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Clients ----------------------------------------------------------
	// One HTTP client backs both REST integrations. The timeout bounds each
	// request, not the pass.
	httpClient := &http.Client{Timeout: 30 * time.Second}

	store := sheets.New(sheets.Config{
		PricesURL: cfg.SheetyPricesEndpoint,
		UsersURL:  cfg.SheetyUsersEndpoint,
		Username:  cfg.SheetyUsername,
		Password:  cfg.SheetyPassword,
	}, httpClient)

	// Construction performs the credential exchange, so a bad key fails
	// here, before any sheet is touched.
	flights, err := amadeus.New(ctx, amadeus.Config{
		APIKey:    cfg.AmadeusAPIKey,
		APISecret: cfg.AmadeusSecret,
		BaseURL:   cfg.AmadeusBaseURL,
		Currency:  cfg.CurrencyCode,
	}, httpClient, logger)
	if err != nil {
		logger.Error("flight API authentication failed", "error", err)
		os.Exit(1)
	}

	notifier, err := notify.NewDispatcher(notify.Config{
		Email: notify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Address:  cfg.EmailAddress,
			Password: cfg.EmailPassword,
		},
		Messaging: notify.MessengerConfig{
			AccountSID: cfg.TwilioSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioVirtualNumber,
			To:         cfg.TwilioVerifiedNumber,
		},
		WhatsAppFrom: cfg.TwilioWhatsAppNumber,
	}, logger)
	if err != nil {
		logger.Error("notifier setup failed", "error", err)
		os.Exit(1)
	}

	// --- Workflow ---------------------------------------------------------
	var opts []service.Option
	if cfg.EnableSMS {
		opts = append(opts, service.WithSMS())
	}
	if cfg.EnableWhatsApp {
		opts = append(opts, service.WithWhatsApp())
	}

	finder := service.NewDealFinder(store, flights, notifier, cfg.OriginIATA, cfg.CurrencyCode, logger, opts...)

	logger.Info("deal finder starting",
		"origin", cfg.OriginIATA,
		"currency", cfg.CurrencyCode,
		"sms", cfg.EnableSMS,
		"whatsapp", cfg.EnableWhatsApp,
	)
	if err := finder.Run(ctx); err != nil {
		logger.Error("pass failed", "error", err)
		os.Exit(1)
	}
	logger.Info("deal finder finished")
}
