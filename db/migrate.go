package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// MigrateUp applies every pending migration for the driver.
// It uses its own connection so closing the migrator never touches the application pool.
func MigrateUp(driverName, dsn string) error {
	m, err := newMigrator(driverName, dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateDown rolls back the given number of migrations; steps <= 0 rolls back everything.
func MigrateDown(driverName, dsn string, steps int) error {
	m, err := newMigrator(driverName, dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

func newMigrator(driverName, dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+driverName)
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %q: %w", driverName, err)
	}

	conn, err := sql.Open(driverName, withDriverDefaults(driverName, dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	var driver database.Driver
	switch driverName {
	case DriverPostgres:
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	case DriverSQLite:
		driver, err = sqlite3.WithInstance(conn, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driverName)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	_, _ = m.Close()
}
