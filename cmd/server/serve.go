package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"murim-academy/internal/auth"
	"murim-academy/internal/config"
	apphttp "murim-academy/internal/http"
	"murim-academy/internal/notify"
	"murim-academy/internal/repository/sqlstore"
	"murim-academy/internal/service"
	"murim-academy/internal/storage"
)

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Setup(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	userRepo := sqlstore.NewUserRepository(db)
	trainerRepo := sqlstore.NewTrainerRepository(db)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)
	users := service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.Auth.BcryptCost), tokens, cfg.Auth.TokenTTL)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("setup storage: %w", err)
	}

	limiter := apphttp.NewRateLimiter(apphttp.RateLimiterConfig{
		PerMinute: cfg.RateLimit.PerMinute,
		Burst:     cfg.RateLimit.Burst,
	})
	defer limiter.Stop()

	handler := apphttp.NewHandler(apphttp.Dependencies{
		Users:        users,
		Messages:     service.NewMessageService(sqlstore.NewMessageRepository(db), buildNotifier(cfg, logger), logger),
		Products:     service.NewProductService(sqlstore.NewProductRepository(db)),
		Schedules:    service.NewScheduleService(sqlstore.NewScheduleRepository(db)),
		Trainers:     service.NewTrainerService(trainerRepo),
		Appointments: service.NewAppointmentService(sqlstore.NewAppointmentRepository(db), userRepo, trainerRepo),
		Images:       service.NewImageService(storageSvc, cfg.Storage.KeyPrefix, logger),
		Guard:        auth.NewGuard(tokens),
		Limiter:      limiter,
		DB:           db,
		Logger:       logger,
	})

	gin.SetMode(gin.ReleaseMode)
	router, err := apphttp.NewRouter(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
	return nil
}

// buildStorage returns nil when no bucket is configured; image uploads then answer 503.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("storage bucket not configured, image uploads disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.PublicBaseURL), nil
}

func buildNotifier(cfg config.Config, logger *logrus.Logger) notify.Notifier {
	if cfg.Notify.SendGridKey == "" {
		return notify.NewLogNotifier(logger)
	}
	n, err := notify.NewSendGridNotifier(cfg.Notify.SendGridKey, cfg.Notify.From, cfg.Notify.To)
	if err != nil {
		logger.WithError(err).Warn("sendgrid disabled, contact messages will only be logged")
		return notify.NewLogNotifier(logger)
	}
	return n
}
