package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/assets"
	"storefront/cache"
	"storefront/config"
	"storefront/database"
	"storefront/gateway"
	"storefront/handler"
	"storefront/helper"
	"storefront/metrics"
	"storefront/router"
	"storefront/service"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.Env)
	slog.SetDefault(log)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, receipt idempotency limited to in-flight requests", slog.Any("error", err))
	}

	var gw service.Gateway
	if cfg.Gateway.Enabled() {
		gw = gateway.NewClient(gateway.Config{
			BaseURL:   cfg.Gateway.BaseURL,
			KeyID:     cfg.Gateway.KeyID,
			KeySecret: cfg.Gateway.KeySecret,
			Timeout:   cfg.Gateway.Timeout,
		})
	} else {
		log.Warn("payment gateway keys not set, payment endpoints disabled")
	}

	var mailer service.ReceiptMailer
	if cfg.SMTP.Enabled() {
		mailer = utils.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	var assetHost service.AssetHost
	if cld, err := assets.New(cfg.Cloud); err == nil {
		assetHost = cld
	} else if errors.Is(err, assets.ErrNotConfigured) {
		log.Warn("cloudinary not configured, uploads disabled")
	} else {
		return err
	}

	payments := service.NewPaymentService(
		gw,
		database.NewPaymentRepository(db),
		cache.NewReceiptCache(rdb, cfg.Redis.ReceiptTTL),
		mailer,
		service.PaymentConfig{
			KeyID:          cfg.Gateway.KeyID,
			KeySecret:      cfg.Gateway.KeySecret,
			GatewayTimeout: cfg.Gateway.Timeout,
		},
		log,
	)

	h := &handler.Handler{
		Coupons:  service.NewCouponService(database.NewCouponRepository(db), log),
		Payments: payments,
		Catalog:  service.NewCatalogService(database.NewProductRepository(db), database.NewReviewRepository(db), log),
		Media:    service.NewMediaService(assetHost, database.NewGalleryRepository(db), database.NewVideoRepository(db), log),
		Auth:     service.NewAuthService(database.NewAccountRepository(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log),
		Log:      log,
		TokenTTL: cfg.Auth.TokenTTL,
	}

	scheduler, err := helper.StartPaymentSweepScheduler(cfg.App.PaymentSweepCron, cfg.App.PaymentPendingTTL, payments, log)
	if err != nil {
		return fmt.Errorf("start payment sweep: %w", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Error("scheduler shutdown", slog.Any("error", err))
		}
	}()

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handler.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	router.SetupRoutes(app, h, cfg.Auth.JWTSecret)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("port", cfg.App.Port))
		errCh <- app.Listen(":" + cfg.App.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(cfg.App.GracefulShutdownTimeout)
}

func newLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if strings.EqualFold(env, "local") {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
