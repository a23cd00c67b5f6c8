package database

import (
	"database/sql"
	"fmt"

	"flightriskradar/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// Repository defines the catalog storage operations
type Repository interface {
	AircraftImageRepository() AircraftImageRepository
	VariationRepository() VariationRepository
	IsSeeded() (bool, error)
	Seed(records []models.AircraftRecord, variations []models.Variation) error
	Close() error
}

// DB implements the Repository interface using SQLite
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := configureSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// configureSQLite applies pragmas for a read-mostly catalog
func configureSQLite(db *sql.DB) error {
	// WAL lets several server processes read the same file
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// AircraftImageRepository returns the repository for aircraft image records
func (d *DB) AircraftImageRepository() AircraftImageRepository {
	return NewAircraftImageRepository(d.db)
}

// VariationRepository returns the repository for model name variations
func (d *DB) VariationRepository() VariationRepository {
	return NewVariationRepository(d.db)
}

// IsSeeded reports whether both catalog tables hold rows
func (d *DB) IsSeeded() (bool, error) {
	images, err := d.AircraftImageRepository().IsTablePopulated()
	if err != nil {
		return false, err
	}
	names, err := d.VariationRepository().IsTablePopulated()
	if err != nil {
		return false, err
	}
	return images && names, nil
}

// Seed writes records and variations in a single transaction so a crash never
// leaves one table filled without the other. Rows already present are kept.
func (d *DB) Seed(records []models.AircraftRecord, variations []models.Variation) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRecords(tx, records); err != nil {
		return err
	}
	if err := insertVariations(tx, variations); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// initSchema creates the database schema if it doesn't exist.
// Rows keep their insertion id so the variation scan order survives a round trip.
func (d *DB) initSchema() error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS aircraft_images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			image_url TEXT NOT NULL,
			thumbnail_url TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS model_variations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_model_variations_code ON model_variations(code)`,
	}

	for _, schema := range schemas {
		if _, err := d.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
