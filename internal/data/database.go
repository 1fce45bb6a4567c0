package data

import (
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"trivia-api/internal/config"
	"trivia-api/migrations"
)

// Supported database/sql driver names.
const (
	DriverSQLite3 = "sqlite3" // mattn/go-sqlite3, cgo
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	DriverMySQL   = "mysql"
	DriverPgx     = "pgx"
)

// NewDB creates a new database connection pool.
func NewDB(cfg config.DBConfig) (*sqlx.DB, error) {
	if _, err := dialectDir(cfg.Driver); err != nil {
		return nil, err
	}

	// sqlx.Connect opens a connection and pings it to verify it's alive.
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; one connection serialises inserts and
	// keeps in-memory databases from splitting across connections.
	if isSQLite(cfg.Driver) {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewMigrator builds a migrate instance over the embedded migrations for
// the connection's dialect. The returned instance must not be closed while
// db is still in use, since closing it closes db.
func NewMigrator(db *sqlx.DB) (*migrate.Migrate, error) {
	dir, err := dialectDir(db.DriverName())
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	var driver database.Driver
	switch db.DriverName() {
	case DriverSQLite3:
		driver, err = migratesqlite3.WithInstance(db.DB, &migratesqlite3.Config{})
	case DriverSQLite:
		driver, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case DriverMySQL:
		driver, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	case DriverPgx:
		driver, err = migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, db.DriverName(), driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// ApplyMigrations runs all up migrations.
func ApplyMigrations(db *sqlx.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	// Up applies all available up migrations.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func dialectDir(driver string) (string, error) {
	switch driver {
	case DriverSQLite3, DriverSQLite:
		return "sqlite", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverPgx:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isSQLite(driver string) bool {
	return driver == DriverSQLite3 || driver == DriverSQLite
}
