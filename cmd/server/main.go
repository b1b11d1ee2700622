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

	"social-stream/internal/config"
	apphttp "social-stream/internal/http"
	"social-stream/internal/logx"
	"social-stream/internal/repository/sqlite"
	"social-stream/internal/service"
	"social-stream/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger := logx.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)
	friendRepo := sqlite.NewFriendRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	sessionService, err := service.NewSessionService(sessionRepo, userRepo, service.SessionConfig{
		SecretKey:   []byte(cfg.Auth.SecretKey),
		TTL:         cfg.Auth.SessionTTL,
		RememberTTL: cfg.Auth.RememberTTL,
	})
	if err != nil {
		logger.Fatalf("setup sessions: %v", err)
	}

	userService, err := service.NewUserService(userRepo)
	if err != nil {
		logger.Fatalf("setup users: %v", err)
	}

	services := apphttp.Services{
		Users:    userService,
		Sessions: sessionService,
		Stream: service.NewStreamService(userRepo, postRepo, storageSvc, service.UploadPolicy{
			AllowedExtensions: cfg.Uploads.AllowedExtensions,
			MaxBytes:          cfg.Uploads.MaxBytes,
		}),
		Comments: service.NewCommentService(postRepo, commentRepo, storageSvc),
		Friends:  service.NewFriendService(userRepo, friendRepo),
		Profiles: service.NewProfileService(userRepo),
	}

	opts := apphttp.Options{
		CookieSecure:      cfg.Auth.CookieSecure,
		RememberTTL:       cfg.Auth.RememberTTL,
		MaxUploadBytes:    cfg.Uploads.MaxBytes,
		AllowedExtensions: cfg.Uploads.AllowedExtensions,
	}
	if local, ok := storageSvc.(*storage.LocalService); ok {
		opts.UploadsDir = local.Root()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = cfg.Uploads.MaxBytes
	router.Use(gin.Recovery(), logx.Middleware(logger))
	apphttp.NewHandler(services, opts).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Backend != "s3" {
		local, err := storage.NewLocalService(cfg.Uploads.Dir, "/uploads")
		if err != nil {
			return nil, err
		}
		logger.Infof("storing uploads in %s", local.Root())
		return local, nil
	}

	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
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
	remote, err := storage.NewS3Service(client, storage.S3Options{
		Bucket:    cfg.Storage.Bucket,
		KeyPrefix: cfg.Storage.KeyPrefix,
	})
	if err != nil {
		return nil, err
	}
	return remote, nil
}
