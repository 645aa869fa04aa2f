// Package migrations embeds the schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed *.sql
var embedded embed.FS

// gooseLogger routes goose output through logrus without exiting on Fatalf.
type gooseLogger struct {
	log *logrus.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof("goose: "+format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Errorf("goose: "+format, v...)
}

func setup(logger *logrus.Logger) error {
	goose.SetBaseFS(embedded)
	goose.SetLogger(gooseLogger{log: logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Run executes one goose command: up, down, status or version.
func Run(ctx context.Context, db *sql.DB, command string, logger *logrus.Logger) error {
	if err := setup(logger); err != nil {
		return err
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			logger.Infof("Database schema version: %d", version)
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	logger.Infof("Migration %s completed", command)
	return nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, logger *logrus.Logger) error {
	return Run(ctx, db, "up", logger)
}

// Collect lists the embedded migrations in version order.
func Collect(logger *logrus.Logger) (goose.Migrations, error) {
	if err := setup(logger); err != nil {
		return nil, err
	}
	return goose.CollectMigrations(".", 0, goose.MaxVersion)
}
