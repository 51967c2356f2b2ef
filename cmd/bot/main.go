package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/clients/budgetapi"
	"max.ks1230/budget-tracker/internal/clients/tg"
	"max.ks1230/budget-tracker/internal/config"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/messages"
	"max.ks1230/budget-tracker/internal/tracing"
)

func main() {
	defer logger.Sync()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(conf.App().ServiceName()+"-bot", conf.Jaeger())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}

	api := budgetapi.New(conf.HTTP().BaseURL(), nil)
	msgService := messages.NewService(client, api)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client.ListenUpdates(ctx, msgService)
}
