package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/config"
)

// FoodCart is the shared connection pool, set by ConnectAndMigrate.
var FoodCart *sql.DB

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// ConnectAndMigrate opens the pool and applies any pending migrations
// from migrationsPath.
func ConnectAndMigrate(cfg config.DatabaseConfig, migrationsPath string) error {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	FoodCart = db
	return migrateUp(db, migrationsPath)
}

func migrateUp(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Tx runs fn inside a transaction; everything commits together or
// rolls back together.
func Tx(fn func(tx *sql.Tx) error) error {
	tx, err := FoodCart.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("failed to rollback transaction")
		}
		return err
	}

	return tx.Commit()
}

// Shutdown closes the shared pool.
func Shutdown() error {
	if FoodCart == nil {
		return nil
	}
	return FoodCart.Close()
}
