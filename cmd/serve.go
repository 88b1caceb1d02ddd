package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/padel-tournament-api/auth"
	"github.com/Dosada05/padel-tournament-api/config"
	"github.com/Dosada05/padel-tournament-api/db"
	"github.com/Dosada05/padel-tournament-api/handlers"
	"github.com/Dosada05/padel-tournament-api/metrics"
	"github.com/Dosada05/padel-tournament-api/middleware"
	"github.com/Dosada05/padel-tournament-api/realtime"
	"github.com/Dosada05/padel-tournament-api/repositories"
	api "github.com/Dosada05/padel-tournament-api/routes"
	"github.com/Dosada05/padel-tournament-api/services"
	"github.com/Dosada05/padel-tournament-api/storage"
	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func serveAction(c *cli.Context) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("env", cfg.Environment),
		slog.String("driver", cfg.DatabaseDriver))

	if cfg.MigrateOnStart {
		if err := db.MigrateUp(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
			logger.Error("failed to apply migrations", slog.Any("error", err))
			return err
		}
		logger.Info("migrations applied")
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Загрузчик аватаров (S3 / Cloudflare R2), опционально
	var uploader storage.FileUploader
	if cfg.Storage.Enabled() {
		uploader, err = storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.Bucket,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize object storage", slog.Any("error", err))
			return err
		}
		logger.Info("object storage initialized", slog.String("bucket", cfg.Storage.Bucket))
	} else {
		logger.Warn("S3_BUCKET is not set, avatar uploads are disabled")
	}

	appMetrics := metrics.New()
	hub := realtime.NewHub(logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecretKey, cfg.TokenTTL)

	// Инициализация репозиториев
	userRepo := repositories.NewUserRepository(dbConn)
	playerRepo := repositories.NewPlayerRepository(dbConn)
	scoringRulesRepo := repositories.NewScoringRulesRepository(dbConn)
	tournamentRepo := repositories.NewTournamentRepository(dbConn)
	enrollmentRepo := repositories.NewEnrollmentRepository(dbConn)

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), tokens, logger)
	playerService := services.NewPlayerService(playerRepo, uploader, logger)
	tournamentService := services.NewTournamentService(
		dbConn,
		tournamentRepo,
		services.NewScoringRulesResolver(scoringRulesRepo),
		appMetrics,
		logger,
	)
	enrollmentService := services.NewEnrollmentService(dbConn, tournamentRepo, enrollmentRepo, hub, appMetrics, logger)

	// Инициализация обработчиков HTTP
	allowOrigin := middleware.OriginChecker(cfg.CORSOrigins)
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		Logger:      logger,
		Tokens:      tokens,
		Metrics:     appMetrics,
		RateLimiter: middleware.NewWindowRateLimiter(cfg.RateLimitRequest, cfg.RateLimitWindow),
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		Diagnostics: !cfg.IsProduction(),
	}, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, logger),
		Player:     handlers.NewPlayerHandler(playerService, logger),
		Tournament: handlers.NewTournamentHandler(tournamentService, enrollmentService, logger),
		WebSocket: handlers.NewWebSocketHandler(hub, enrollmentService, func(r *http.Request) bool {
			return allowOrigin(r.Header.Get("Origin"))
		}, logger),
		System: handlers.NewSystemHandler(dbConn, logger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gCtx)
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("application exited")
	return nil
}
