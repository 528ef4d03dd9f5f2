package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrBusy is returned when SQLite is busy after all retries
var ErrBusy = errors.New("database is busy, please try again")

// sqliteDSN builds the connection string in the driver's
// _pragma=name(value) form. WAL allows concurrent readers with one
// writer; _txlock=immediate makes write transactions take the lock up
// front instead of failing mid-transaction.
func sqliteDSN(dbPath string) string {
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=busy_timeout(10000)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=cache_size(1000)",
		"_pragma=foreign_keys(ON)",
		"_txlock=immediate",
	}
	return dbPath + "?" + strings.Join(pragmas, "&")
}

// initSQLite initializes a SQLite database connection
func initSQLite(dbPath string) error {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Small pool: concurrent reads are fine under WAL, writes serialize
	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(2)
	DB.SetConnMaxLifetime(5 * time.Minute)
	DB.SetConnMaxIdleTime(1 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Verify WAL mode is enabled
	var journalMode string
	if err := DB.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		log.Printf("Warning: Could not verify journal mode: %v", err)
	} else {
		log.Printf("SQLite journal mode: %s", journalMode)
	}

	dbType = DBTypeSQLite
	log.Printf("SQLite database initialized: %s", dbPath)
	return nil
}

// isBusyError checks if an error is a SQLITE_BUSY error
func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "busy") || strings.Contains(errStr, "locked")
}

// WithRetry executes a function with retry logic for SQLITE_BUSY errors.
// For MySQL, the function is executed without retry logic.
func WithRetry(fn func() error) error {
	return WithRetryContext(context.Background(), fn)
}

// WithRetryContext executes a function with retry logic and context support
func WithRetryContext(ctx context.Context, fn func() error) error {
	// MySQL handles lock contention server-side
	if dbType == DBTypeMySQL {
		return fn()
	}

	const maxRetries = 5
	baseDelay := 50 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isBusyError(lastErr) {
			return lastErr
		}

		if attempt > 0 {
			log.Printf("SQLite busy, retry attempt %d/%d", attempt+1, maxRetries)
		}

		// Exponential backoff: 50ms, 100ms, 200ms, 400ms, 800ms
		delay := baseDelay * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Printf("SQLite busy after %d retries: %v", maxRetries, lastErr)
	return ErrBusy
}
