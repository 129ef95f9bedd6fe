// Package app assembles the roster and search modules into one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"credkit/internal/platform/config"
	"credkit/internal/platform/httpserver"
	"credkit/internal/platform/kafka"
	platformmetrics "credkit/internal/platform/metrics"
	"credkit/internal/platform/ratelimit"
	"credkit/internal/roster"
	rosterhandler "credkit/internal/roster/handler"
	rostermetrics "credkit/internal/roster/metrics"
	"credkit/internal/roster/publisher"
	"credkit/internal/search"
	searchhandler "credkit/internal/search/handler"
	searchmetrics "credkit/internal/search/metrics"
	"credkit/pkg/platform/circuit"
)

// App owns every long-lived dependency of the server.
type App struct {
	cfg    config.Server
	logger *slog.Logger

	Roster  *roster.Service
	Engine  *search.Engine
	History *search.History
	Router  http.Handler

	storage io.Closer
	kafka   *kgo.Client
	detach  func()

	// stopForwarding fails records the shutdown flush could not deliver.
	stopForwarding context.CancelFunc
}

// New opens storage and wires the modules. reg receives every metric; a nil
// reg uses a private registry and disables /metrics.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, reg *prometheus.Registry) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var gatherer prometheus.Gatherer
	if reg == nil {
		reg = prometheus.NewRegistry()
	} else {
		gatherer = reg
	}

	kv, closer, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}

	rosterMetrics := rostermetrics.New(reg)
	searchMetrics := searchmetrics.New(reg)

	a := &App{
		cfg:     cfg,
		logger:  logger,
		storage: closer,
		detach:  func() {},

		stopForwarding: func() {},
	}
	a.Roster = roster.NewService(kv, cfg.StorageNamespace, logger, rosterMetrics)
	a.Engine = search.NewEngine(a.Roster, searchMetrics)
	a.History = search.NewHistory(kv, cfg.StorageNamespace, logger, searchMetrics)

	limiter := ratelimit.New(cfg.WriteRate, cfg.WriteBurst, ratelimit.WithLogger(logger))
	a.Router = httpserver.NewRouter(logger, platformmetrics.New(reg), gatherer,
		roster.NewHandler(a.Roster, logger, rosterhandler.WithWriteThrottle(limiter.Middleware)),
		search.NewHandler(a.Engine, a.History, logger, searchhandler.WithWriteThrottle(limiter.Middleware)),
	)

	if err := a.startForwarder(ctx, rosterMetrics); err != nil {
		_ = closer.Close()
		return nil, err
	}
	return a, nil
}

// startForwarder attaches the Kafka forwarder when brokers are configured.
// A missing topic is created; failure to create it is logged, not fatal.
func (a *App) startForwarder(ctx context.Context, m *rostermetrics.Metrics) error {
	client, err := kafka.NewClient(a.cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka client: %w", err)
	}
	if client == nil {
		return nil
	}
	if err := kafka.EnsureTopic(ctx, client, a.cfg.Kafka.RosterTopic, 1, 1); err != nil {
		a.logger.WarnContext(ctx, "failed to ensure roster topic",
			"topic", a.cfg.Kafka.RosterTopic,
			"error", err,
		)
	}

	forwarder := publisher.New(client, a.cfg.Kafka.RosterTopic,
		publisher.WithLogger(a.logger),
		publisher.WithMetrics(m),
		publisher.WithBreaker(circuit.New("kafka-roster")),
	)
	a.kafka = client
	fctx, stop := context.WithCancel(context.WithoutCancel(ctx))
	a.stopForwarding = stop
	a.detach = forwarder.Attach(fctx, a.Roster)
	a.logger.InfoContext(ctx, "forwarding roster changes to kafka", "topic", a.cfg.Kafka.RosterTopic)
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts down within the
// configured timeout.
func (a *App) Run(ctx context.Context) error {
	srv := httpserver.New(a.cfg.Addr, a.Router)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.InfoContext(ctx, "starting credkit", "addr", a.cfg.Addr, "storage", a.cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()
		a.logger.InfoContext(ctx, "shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close stops forwarding, flushes pending Kafka records and releases storage.
func (a *App) Close(ctx context.Context) error {
	a.detach()
	if a.kafka != nil {
		flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := a.kafka.Flush(flushCtx); err != nil {
			a.logger.WarnContext(ctx, "kafka flush incomplete", "error", err)
		}
		cancel()
		a.stopForwarding()
		a.kafka.Close()
	}
	return a.storage.Close()
}
