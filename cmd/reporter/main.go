package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/clients/cache"
	"max.ks1230/budget-tracker/internal/clients/kafka"
	"max.ks1230/budget-tracker/internal/config"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/reports"
	"max.ks1230/budget-tracker/internal/model/storage"
	"max.ks1230/budget-tracker/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Reporter init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(conf.App().ServiceName()+"-reporter", conf.Jaeger())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres:", zap.Error(err))
	}
	defer db.Close()

	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached:", zap.Error(err))
	}

	warmer := reports.NewWarmer(reports.NewGenerator(db), mc)

	consumer, err := kafka.NewConsumer(conf.Kafka(), warmer)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Error("consuming stopped", zap.Error(err))
	}
}
