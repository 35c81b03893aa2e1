package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/pagecraft-io/pagecraft/internal/bootstrap"
	"github.com/pagecraft-io/pagecraft/internal/config"
	"github.com/pagecraft-io/pagecraft/internal/infra/cache"
	"github.com/pagecraft-io/pagecraft/internal/modules/handler"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
	"github.com/pagecraft-io/pagecraft/internal/router"
	"github.com/pagecraft-io/pagecraft/internal/telemetry"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	// Tracing installs the global provider before the DB and redis
	// providers run, so their instrumentation picks it up.
	if _, err := telemetry.SetupTracing(cfg); err != nil {
		log.Fatal("telemetry setup failed", zap.Error(err))
	}

	r := router.NewRouter(router.RouterDeps{
		Config:             cfg,
		Log:                log,
		UserService:        do.MustInvoke[service.UserService](inj),
		ProjectHandler:     do.MustInvoke[*handler.ProjectHandler](inj),
		PublicationHandler: do.MustInvoke[*handler.PublicationHandler](inj),
		TemplateHandler:    do.MustInvoke[*handler.TemplateHandler](inj),
		LikeHandler:        do.MustInvoke[*handler.LikeHandler](inj),
		ActivityHandler:    do.MustInvoke[*handler.ActivityHandler](inj),
		ProjectLogHandler:  do.MustInvoke[*handler.ProjectLogHandler](inj),
		FileHandler:        do.MustInvoke[*handler.FileHandler](inj),
		PlaygroundHandler:  do.MustInvoke[*handler.PlaygroundHandler](inj),
		UserHandler:        do.MustInvoke[*handler.UserHandler](inj),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if err := telemetry.Shutdown(ctx); err != nil {
		log.Error("telemetry shutdown failed", zap.Error(err))
	}

	if rdb, err := do.Invoke[*redis.Client](inj); err == nil {
		_ = cache.Close(rdb)
	}
}
