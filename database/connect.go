package database

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/config"
	"storefront/model"

	"github.com/avast/retry-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres pool, retrying while the database comes up, then migrates
// and seeds it.
func Connect(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
				TranslateError: true,
				Logger:         logger.Default.LogMode(logger.Warn),
			})
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		retry.Attempts(cfg.Database.ConnectAttempts),
		retry.Delay(cfg.Database.ConnectDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("database not ready", slog.Uint64("attempt", uint64(n+1)), slog.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("connection opened to database", slog.String("host", cfg.Database.Host), slog.String("name", cfg.Database.Name))

	if err := db.AutoMigrate(
		&model.Account{},
		&model.Coupon{},
		&model.Payment{},
		&model.Product{},
		&model.Review{},
		&model.GalleryImage{},
		&model.Video{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database migrated")

	if err := SeedData(db, cfg.Auth, log); err != nil {
		return nil, fmt.Errorf("seed database: %w", err)
	}
	return db, nil
}
