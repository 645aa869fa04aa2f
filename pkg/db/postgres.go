package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrUnreachable is returned with a usable pool when the first ping never succeeded.
var ErrUnreachable = errors.New("database unreachable")

type Options struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Retry           RetryPolicy
}

// Connect opens the pool and waits for the first successful ping, retrying transient failures.
// If the store stays down the pool is still returned, together with an error wrapping ErrUnreachable,
// so callers can keep serving and let later queries reconnect.
func Connect(ctx context.Context, opts Options, logger *logrus.Logger) (*sql.DB, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	if strings.HasPrefix(opts.URL, "postgres://") || strings.HasPrefix(opts.URL, "postgresql://") {
		if _, err := pq.ParseURL(opts.URL); err != nil {
			return nil, fmt.Errorf("invalid database URL: %w", err)
		}
	}

	db, err := sql.Open("postgres", opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	err = opts.Retry.Do(ctx, logger, "ping database", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		logger.Errorf("Database ping failed, continuing without a live connection: %v", err)
		return db, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	logger.WithFields(logrus.Fields{
		"max_open_conns":    opts.MaxOpenConns,
		"max_idle_conns":    opts.MaxIdleConns,
		"conn_max_lifetime": opts.ConnMaxLifetime.String(),
	}).Info("Database connection pool ready")
	return db, nil
}
