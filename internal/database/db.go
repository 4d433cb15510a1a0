package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"royalcert/internal/auth"
	"royalcert/internal/logging"
	"royalcert/internal/models"

	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// Connect opens the postgres pool, retrying while the database comes up.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	attempt := 0

	backoff := retry.WithMaxRetries(connectAttempts-1, retry.NewConstant(connectDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		logging.Log.Info("connecting to database", zap.Int("attempt", attempt), zap.Int("max_attempts", connectAttempts))

		conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err != nil {
			logging.Log.Warn("database connect failed", zap.Error(err))
			return retry.RetryableError(err)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			logging.Log.Warn("database ping failed", zap.Error(err))
			_ = sqlDB.Close()
			return retry.RetryableError(err)
		}

		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", attempt, err)
	}

	logging.Log.Info("connected to database")
	return db, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type AdminSeed struct {
	Username string
	Password string
	Email    string
}

// SeedAdmin creates the bootstrap administrator when no admin exists yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if seed.Username == "" || seed.Password == "" {
		return errors.New("admin username and password are required")
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     seed.Username,
		Email:        seed.Email,
		FullName:     "Sistem Yöneticisi",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	logging.Log.Info("created default admin user", zap.String("username", seed.Username))
	return nil
}
