package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"

	"MediaHub.com/config"
	mhapp "MediaHub.com/pkg/app"
	"MediaHub.com/pkg/logger"
	"MediaHub.com/pkg/mq"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := mhapp.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("init dependencies failed: %v", err)
	}
	defer cleanup()

	r := NewReconciler(deps.Store, deps.Counters, deps.Redis)
	go r.RunSweeper(ctx, sweepInterval)

	if !cfg.RabbitMq.Enable {
		hlog.Info("rabbitmq disabled, reconciler runs table sweeps only")
		<-ctx.Done()
		return
	}

	consumer, err := mq.NewConsumer(cfg.RabbitMqURL(), 10)
	if err != nil {
		logrus.Fatalf("create reconcile consumer failed: %v", err)
	}
	defer consumer.Close()

	hlog.Info("reconciler started, waiting for tasks")
	if err := consumer.ConsumeReconcile(ctx, r); err != nil && ctx.Err() == nil {
		hlog.Errorf("reconcile consumer stopped: %v", err)
	}
	hlog.Info("reconciler shutting down")
}
