// Package main runs the demo merchant server: it serves a payment form,
// creates transactions at the gateway, and decodes result tokens on the
// shopper's return.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/artpar/hostedpay/adapters/idgen"
	"github.com/artpar/hostedpay/adapters/metrics"
	"github.com/artpar/hostedpay/adapters/transport"
	"github.com/artpar/hostedpay/app"
	"github.com/artpar/hostedpay/config"
	"github.com/artpar/hostedpay/domain/txn"
	"github.com/artpar/hostedpay/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "hostedpay.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	hotReload := flag.Bool("hot-reload", true, "Enable hot reload of configuration")
	flag.Parse()

	if *showVersion {
		fmt.Printf("hostedpay %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if *validate {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration valid\n")
		fmt.Printf("  Gateway: %s\n", cfg.Gateway.URL)
		fmt.Printf("  User id: %s\n", cfg.Gateway.UserID)
		os.Exit(0)
	}

	initial, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := setupLogger(initial.Logging)

	holder, err := config.NewHolder(*configPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := holder.Get()

	collector := metrics.New()
	handler := web.New(web.Deps{
		Service: buildService(cfg, logger, collector),
		Logger:  logger,
		Metrics: promhttp.Handler(),
	})

	// Credential or endpoint edits take effect without a restart.
	holder.OnChange(func(next *config.Config) {
		handler.SetService(buildService(next, logger, collector))
	})
	if *hotReload {
		if err := holder.WatchFile(); err != nil {
			logger.Error().Err(err).Msg("config file watch unavailable")
		}
	}
	holder.WatchSignals()
	defer holder.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(cfg.Metrics.Path),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info().
		Str("addr", addr).
		Str("gateway", cfg.Gateway.URL).
		Str("version", version).
		Msg("merchant demo server listening")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func buildService(cfg *config.Config, logger zerolog.Logger, collector *metrics.Collector) *app.PaymentService {
	tr := transport.New(transport.Config{
		Timeout:            cfg.Gateway.Timeout,
		InsecureSkipVerify: cfg.Gateway.InsecureSkipVerify,
	}, logger)

	return app.NewPaymentService(app.PaymentDeps{
		Transport:   tr,
		IDs:         idgen.UUID{},
		Credentials: txn.Credentials{UserID: cfg.Gateway.UserID, Key: cfg.Gateway.Key},
		Endpoint:    cfg.Gateway.URL,
		Logger:      logger,
		Metrics:     collector,
	})
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
