package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/MileWise/milewise-backend/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending database migrations using golang-migrate.
// It reads migration files embedded in the binary, connects to the database,
// and applies any migrations that haven't been run yet (in numeric order).
// Safe to call on every startup — already-applied migrations are skipped.
func RunMigrations(dbURL string) error {
	log := logger.GetLogger()

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	// golang-migrate uses pgx v5 driver, connection string must use pgx5:// scheme
	m, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5URL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		// A previous migration failed partway, leaving dirty state.
		// Force-set to the last known good version so we can retry cleanly.
		cleanVersion := int(version) - 1
		log.Infow("Dirty migration state detected, resetting to retry",
			"dirtyVersion", version,
			"resettingTo", cleanVersion)
		if err := m.Force(cleanVersion); err != nil {
			return fmt.Errorf("failed to reset dirty migration: %w", err)
		}
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database is up to date, no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	if version, dirty, err = m.Version(); err == nil {
		log.Infow("Migrations applied successfully",
			"currentVersion", version,
			"dirty", dirty)
	} else {
		log.Infow("Migrations applied successfully")
	}

	return nil
}

// convertToPgx5URL converts a standard postgres:// URL to the pgx5:// scheme
// required by golang-migrate's pgx v5 driver.
func convertToPgx5URL(dbURL string) string {
	if strings.HasPrefix(dbURL, "postgresql:") {
		return "pgx5:" + strings.TrimPrefix(dbURL, "postgresql:")
	}
	if strings.HasPrefix(dbURL, "postgres:") {
		return "pgx5:" + strings.TrimPrefix(dbURL, "postgres:")
	}
	return dbURL
}
