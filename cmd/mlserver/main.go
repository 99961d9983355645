package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitasports/backend/internal/lib/storage"
	"github.com/vitasports/backend/internal/logger"
	"github.com/vitasports/backend/internal/mlserver"
)

func main() {
	cfg, err := mlserver.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.Production)

	var uploads mlserver.Uploader
	if cfg.Storage.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := storage.New(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		cancel()
		if err != nil {
			log.Error().Err(err).Msg("object storage unavailable, videos will not be kept")
		} else {
			uploads = client
		}
	}

	srv := mlserver.New(cfg, &log, uploads)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start ML server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("ML server forced to shutdown")
	}
	log.Info().Msg("ML server exited properly")
}
