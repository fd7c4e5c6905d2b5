package database

import (
	"database/sql"
	"fmt"

	"atelier/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// prepare points goose at migrationsDir, or at the embedded migrations when it is empty
func prepare(migrationsDir string) (string, error) {
	if migrationsDir == "" {
		goose.SetBaseFS(migrations.FS)
		migrationsDir = "."
	} else {
		goose.SetBaseFS(nil)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return "", fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return migrationsDir, nil
}

// RunMigrations applies every pending migration
func RunMigrations(db *sql.DB, migrationsDir string, logger *zap.Logger) error {
	dir, err := prepare(migrationsDir)
	if err != nil {
		return err
	}

	logger.Info("Checking for pending migrations", zap.String("dir", migrationsDir))

	if err := goose.Up(db, dir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Schema is current", zap.Int64("version", version))
	return nil
}

// GetMigrationStatus prints the status of each migration through goose's logger
func GetMigrationStatus(db *sql.DB, migrationsDir string) error {
	dir, err := prepare(migrationsDir)
	if err != nil {
		return err
	}

	return goose.Status(db, dir)
}

// RollbackMigration reverts the most recent migration
func RollbackMigration(db *sql.DB, migrationsDir string, logger *zap.Logger) error {
	dir, err := prepare(migrationsDir)
	if err != nil {
		return err
	}

	if err := goose.Down(db, dir); err != nil {
		logger.Error("Failed to roll back migration", zap.Error(err))
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Rolled back one migration", zap.Int64("version", version))
	return nil
}
