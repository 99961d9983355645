// Package server composes the long-lived dependencies of the API: config,
// loggers, the database pool, Redis, background jobs, email, object storage,
// the cache and the realtime hub. It also owns the http.Server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/config"
	"github.com/vitasports/backend/internal/database"
	"github.com/vitasports/backend/internal/lib/auth"
	"github.com/vitasports/backend/internal/lib/cache"
	"github.com/vitasports/backend/internal/lib/email"
	"github.com/vitasports/backend/internal/lib/job"
	"github.com/vitasports/backend/internal/lib/realtime"
	"github.com/vitasports/backend/internal/lib/storage"
	loggerPkg "github.com/vitasports/backend/internal/logger"
)

// LeaderboardChannel carries score change notifications between instances.
const LeaderboardChannel = "leaderboard:updates"

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService
	Email         *email.Client
	Tokens        *auth.TokenManager
	Cache         *cache.Cache
	Hub           *realtime.Hub

	// Storage is nil when no bucket is configured.
	Storage *storage.Client

	httpServer     *http.Server
	stopBackground context.CancelFunc
}

// New connects to the database and Redis and builds the integrations. Job
// handlers are wired and started by the caller once repositories exist.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Redis backs jobs, caching and rate limiting but the API can answer
	// without it, so a failed ping is not fatal.
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	emailClient, err := email.NewClient(cfg.Integration, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email client: %w", err)
	}
	if !emailClient.Configured() {
		logger.Warn().Msg("Resend API key not provided, emails will not be sent")
	}

	var storageClient *storage.Client
	if cfg.Storage.Enabled() {
		storageClient, err = storage.New(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize object storage, uploads disabled")
			storageClient = nil
		}
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           job.NewJobService(logger, cfg),
		Email:         emailClient,
		Tokens:        auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL),
		Cache:         cache.New(redisClient, config.ServiceName),
		Hub:           realtime.NewHub(logger),
		Storage:       storageClient,
	}, nil
}

// StartRealtime relays leaderboard notifications from Redis to the local
// websocket subscribers until Shutdown.
func (s *Server) StartRealtime() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopBackground = cancel

	go s.Hub.Run(ctx, s.Cache.Subscribe(ctx, LeaderboardChannel))
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains HTTP first, then stops workers and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.stopBackground != nil {
		s.stopBackground()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Warn().Err(err).Msg("failed to close redis client")
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
