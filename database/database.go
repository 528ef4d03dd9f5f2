package database

import (
	"database/sql"
	"fmt"
	"log"
)

// DBType identifies the active database backend
type DBType string

const (
	DBTypeSQLite DBType = "sqlite"
	DBTypeMySQL  DBType = "mysql"
)

// DB holds the database connection
var DB *sql.DB

var dbType DBType

// Config selects and configures the database backend
type Config struct {
	Type       string // "sqlite" or "mysql", defaults to sqlite
	SQLitePath string
	MySQL      MySQLConfig
}

// Init initializes the database connection and runs migrations
func Init(cfg Config) error {
	switch cfg.Type {
	case "mysql":
		if err := initMySQL(cfg.MySQL); err != nil {
			return err
		}
	case "sqlite", "":
		if err := initSQLite(cfg.SQLitePath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported database type: %q", cfg.Type)
	}

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Database ready (%s)", dbType)
	return nil
}

// Type returns the active backend type
func Type() DBType {
	return dbType
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// WithTransaction executes a function within a transaction with retry support.
// If the function returns an error, the transaction is rolled back.
func WithTransaction(fn func(tx *sql.Tx) error) error {
	return WithRetry(func() error {
		tx, err := DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}
