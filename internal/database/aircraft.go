package database

import (
	"database/sql"
	"fmt"

	"flightriskradar/internal/models"
)

type AircraftImageRepository interface {
	InsertBatch(records []models.AircraftRecord) error
	IsTablePopulated() (bool, error)
	All() ([]models.AircraftRecord, error)
}

type aircraftImageRepository struct {
	db *sql.DB
}

func NewAircraftImageRepository(db *sql.DB) AircraftImageRepository {
	return &aircraftImageRepository{db: db}
}

// InsertBatch inserts one or more aircraft image records in a single transaction.
// Codes already present are left untouched.
func (r *aircraftImageRepository) InsertBatch(records []models.AircraftRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRecords(tx, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertRecords(tx *sql.Tx, records []models.AircraftRecord) error {
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO aircraft_images (
		code, name, image_url, thumbnail_url
	) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.Code, rec.Name, rec.ImageURL, rec.ThumbnailURL); err != nil {
			return fmt.Errorf("failed to insert aircraft record %s: %w", rec.Code, err)
		}
	}

	return nil
}

func (r *aircraftImageRepository) IsTablePopulated() (bool, error) {
	var ignored int
	err := r.db.QueryRow("SELECT 1 FROM aircraft_images LIMIT 1").Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check aircraft_images table: %w", err)
	}
	return true, nil
}

// All returns every record in insertion order
func (r *aircraftImageRepository) All() ([]models.AircraftRecord, error) {
	rows, err := r.db.Query(`SELECT code, name, image_url, thumbnail_url FROM aircraft_images ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft_images: %w", err)
	}
	defer rows.Close()

	var records []models.AircraftRecord
	for rows.Next() {
		var rec models.AircraftRecord
		if err := rows.Scan(&rec.Code, &rec.Name, &rec.ImageURL, &rec.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("failed to scan aircraft record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aircraft_images: %w", err)
	}

	return records, nil
}
