// Command cleandemo demonstrates autoclean on a three-level struct chain and
// on a scenario fixture backed by a user store.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/idudko/go-autoclean/internal/audit"
	"github.com/idudko/go-autoclean/internal/example/userstore"
	"github.com/idudko/go-autoclean/internal/observability"
	"github.com/idudko/go-autoclean/pkg/autoclean"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	logger := observability.InitLogger("cleandemo", cfg.LogLevel)
	if cfg.ConfigFile() != "" {
		logger.Debug().Str("path", cfg.ConfigFile()).Msg("config file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Error().Err(err).Msg("demo failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, out io.Writer, logger zerolog.Logger) error {
	selectors, err := cfg.Selectors()
	if err != nil {
		return err
	}

	metrics := observability.NewMetricsObserver()
	subject := audit.NewSubject()
	subject.Attach(metrics)
	if cfg.AuditFile != "" {
		subject.Attach(audit.NewFileObserver(cfg.AuditFile))
	}
	if cfg.AuditURL != "" {
		subject.Attach(audit.NewHTTPObserver(cfg.AuditURL, audit.WithSigningKey(cfg.AuditKey)))
	}

	d := &demo{
		cfg:       cfg,
		selectors: selectors,
		out:       out,
		logger:    logger,
		observer:  subject,
	}

	switch cfg.Scenario {
	case "hierarchy":
		err = d.runHierarchy()
	case "plan":
		err = d.runPlan()
	case "feature":
		err = runFeatureWithStore(ctx, d)
	}
	if err != nil {
		return err
	}

	logSummary(logger, metrics)
	return nil
}

func runFeatureWithStore(ctx context.Context, d *demo) error {
	if d.cfg.DSN == "" {
		return d.runFeature(ctx, userstore.NewMemStore())
	}

	store, err := userstore.NewPGStore(ctx, d.cfg.DSN)
	if err != nil {
		return err
	}
	holder := &struct{ Store *userstore.PGStore }{Store: store}
	defer func() {
		// closes the pool through the quiet Close method
		if err := autoclean.Reset(holder); err != nil {
			d.logger.Error().Err(err).Msg("failed to release store")
		}
	}()

	if err := store.Truncate(ctx); err != nil {
		return err
	}
	return d.runFeature(ctx, store)
}

func logSummary(logger zerolog.Logger, metrics *observability.MetricsObserver) {
	families, err := metrics.Registry().Gather()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to gather metrics")
		return
	}
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		logger.Info().Str("metric", mf.GetName()).Float64("value", total).Msg("reset summary")
	}
}
