package database

import (
	"database/sql"
	"fmt"

	"flightriskradar/internal/models"
)

type VariationRepository interface {
	InsertBatch(variations []models.Variation) error
	IsTablePopulated() (bool, error)
	All() ([]models.Variation, error)
}

type variationRepository struct {
	db *sql.DB
}

func NewVariationRepository(db *sql.DB) VariationRepository {
	return &variationRepository{db: db}
}

// InsertBatch appends variations in slice order; names already present keep their position
func (r *variationRepository) InsertBatch(variations []models.Variation) error {
	if len(variations) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertVariations(tx, variations); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertVariations(tx *sql.Tx, variations []models.Variation) error {
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO model_variations (name, code) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range variations {
		if _, err := stmt.Exec(v.Name, v.Code); err != nil {
			return fmt.Errorf("failed to insert variation %q: %w", v.Name, err)
		}
	}

	return nil
}

func (r *variationRepository) IsTablePopulated() (bool, error) {
	var ignored int
	err := r.db.QueryRow("SELECT 1 FROM model_variations LIMIT 1").Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check model_variations table: %w", err)
	}
	return true, nil
}

// All returns the variation table in scan order
func (r *variationRepository) All() ([]models.Variation, error) {
	rows, err := r.db.Query(`SELECT name, code FROM model_variations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query model_variations: %w", err)
	}
	defer rows.Close()

	var variations []models.Variation
	for rows.Next() {
		var v models.Variation
		if err := rows.Scan(&v.Name, &v.Code); err != nil {
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		variations = append(variations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model_variations: %w", err)
	}

	return variations, nil
}
