package database

import (
	"errors"
	"fmt"

	"lms-backend/internal/data/migrations"
	"lms-backend/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// NewMigrator builds a migrator over the embedded schema files.
func NewMigrator(config utils.DatabaseConfig) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, PostgresURL(config))
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}

	return m, nil
}

// MigrateUp applies every pending migration. No pending migrations is not an error.
func MigrateUp(config utils.DatabaseConfig) error {
	m, err := NewMigrator(config)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateDown reverts steps migrations, or all of them when steps <= 0.
func MigrateDown(config utils.DatabaseConfig, steps int) error {
	m, err := NewMigrator(config)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
