package catalog

import (
	"fmt"
	"log/slog"

	"flightriskradar/internal/database"
	"flightriskradar/internal/models"
)

// Source describes where the catalog tables come from
type Source struct {
	DBPath        string // optional SQLite catalog store
	RecordsCSV    string // optional extra records
	VariationsCSV string // optional extra variations
}

// Load builds the catalog from the built-in tables plus any CSV extras.
// CSV entries are appended after the built-in ones so they never shadow
// an earlier substring match. With a DBPath, an empty store is seeded
// with those tables first and the catalog is then read back from it.
func Load(src Source) (*Catalog, error) {
	extraRecords, extraVariations, err := database.LoadCatalogCSV(src.RecordsCSV, src.VariationsCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog CSV: %w", err)
	}

	records := append(DefaultRecords(), extraRecords...)
	variations := append(DefaultVariations(), extraVariations...)

	// Validate the merged tables up front so both modes reject the same input
	merged, err := New(records, variations)
	if err != nil {
		return nil, err
	}

	if src.DBPath == "" {
		return merged, nil
	}

	db, err := database.New(src.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer db.Close()

	return loadFromStore(db, records, variations)
}

func loadFromStore(db database.Repository, records []models.AircraftRecord, variations []models.Variation) (*Catalog, error) {
	seeded, err := db.IsSeeded()
	if err != nil {
		return nil, err
	}

	if !seeded {
		// A store with only one table filled is topped up; existing rows are kept
		slog.Info("Catalog store is not fully seeded, seeding",
			"records", len(records),
			"variations", len(variations),
		)
		if err := db.Seed(records, variations); err != nil {
			return nil, fmt.Errorf("failed to seed catalog store: %w", err)
		}
	} else {
		slog.Info("Catalog store is already populated")
	}

	storedRecords, err := db.AircraftImageRepository().All()
	if err != nil {
		return nil, err
	}
	storedVariations, err := db.VariationRepository().All()
	if err != nil {
		return nil, err
	}

	return New(storedRecords, storedVariations)
}
