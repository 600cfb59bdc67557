// Command otp-sweeper deletes one-time codes whose expiry has passed.
// Expired codes are already rejected at verification; this only reclaims rows.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/infrastructure/postgres"
	"github.com/student-records-api/internal/pkg/logger"
)

type expiredOtpStore interface {
	DeleteExpiredOtps(ctx context.Context, now time.Time) (int64, error)
}

func main() {
	if err := run(); err != nil {
		slog.Error("otp sweep failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return sweep(ctx, postgres.NewCredentialRepo(db), time.Now().UTC(), log)
}

func sweep(ctx context.Context, store expiredOtpStore, now time.Time, log *slog.Logger) error {
	n, err := store.DeleteExpiredOtps(ctx, now)
	if err != nil {
		return fmt.Errorf("sweep expired otps: %w", err)
	}
	log.Info("swept expired otps", "deleted", n)
	return nil
}
