package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/clients/cache"
	"max.ks1230/budget-tracker/internal/clients/kafka"
	"max.ks1230/budget-tracker/internal/config"
	"max.ks1230/budget-tracker/internal/health"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/reports"
	"max.ks1230/budget-tracker/internal/model/storage"
	"max.ks1230/budget-tracker/internal/model/tracker"
	"max.ks1230/budget-tracker/internal/server"
	"max.ks1230/budget-tracker/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Server init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(conf.App().ServiceName(), conf.Jaeger())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts, closeDeps := optionalDeps(conf)
	defer closeDeps()

	var service *tracker.Service
	if conf.Postgres().Enabled() {
		db, dbErr := storage.NewPostgresStorage(conf.Postgres())
		if dbErr != nil {
			logger.Fatal("failed to init postgres:", zap.Error(dbErr))
		}
		defer db.Close()
		if dbErr = db.Migrate(ctx); dbErr != nil {
			logger.Fatal("failed to migrate postgres:", zap.Error(dbErr))
		}
		service = tracker.NewService(db, reports.NewGenerator(db), opts...)
	} else {
		logger.Info("postgres not configured, keeping data in memory")
		mem := storage.NewInMemStorage()
		service = tracker.NewService(mem, reports.NewGenerator(mem), opts...)
	}

	healthServer, err := health.NewServer(conf.GRPC().HealthPort())
	if err != nil {
		logger.Fatal("failed to init health server", zap.Error(err))
	}
	go healthServer.Serve()

	httpServer := &http.Server{
		Addr:        conf.HTTP().ListenAddress(),
		Handler:     server.New(service).Handler(),
		ReadTimeout: conf.HTTP().ReadTimeout(),
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
			cancel()
		}
	}()

	healthServer.SetServing(true)
	logger.Info("Server init - end")

	<-ctx.Done()

	logger.Info("Shutting down")
	healthServer.SetServing(false)
	shutdownCtx, stop := context.WithTimeout(context.Background(), conf.App().ShutdownTimeout())
	defer stop()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	healthServer.Shutdown()
}

// optionalDeps wires the report cache and the event producer when configured.
func optionalDeps(conf *config.Service) ([]tracker.Option, func()) {
	var opts []tracker.Option
	closeDeps := func() {}

	if conf.Memcached().Enabled() {
		mc, err := cache.NewMemcache(conf.Memcached())
		if err != nil {
			logger.Error("memcached unavailable, reports will not be cached", zap.Error(err))
		} else {
			opts = append(opts, tracker.WithCache(mc))
		}
	}

	if conf.Kafka().Enabled() {
		producer, err := kafka.NewProducer(conf.Kafka())
		if err != nil {
			logger.Fatal("failed to init kafka producer", zap.Error(err))
		}
		opts = append(opts, tracker.WithPublisher(producer))
		closeDeps = producer.Close
	}

	return opts, closeDeps
}
