package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"flightriskradar/internal/models"

	"github.com/jszwec/csvutil"
)

// ParseRecordsCSV decodes aircraft image records.
// Expected header: code,name,image_url,thumbnail_url
func ParseRecordsCSV(reader io.Reader) ([]models.AircraftRecord, error) {
	var records []models.AircraftRecord

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for aircraft records: %w", err)
	}

	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode aircraft records CSV: %w", err)
	}

	return records, nil
}

// ParseVariationsCSV decodes model name variations, keeping file order.
// Expected header: name,code
func ParseVariationsCSV(reader io.Reader) ([]models.Variation, error) {
	var variations []models.Variation

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for variations: %w", err)
	}

	if err := decoder.Decode(&variations); err != nil {
		return nil, fmt.Errorf("failed to decode variations CSV: %w", err)
	}

	return variations, nil
}

// LoadCatalogCSV reads extra records and variations from disk. Empty paths are skipped.
func LoadCatalogCSV(recordsPath, variationsPath string) ([]models.AircraftRecord, []models.Variation, error) {
	var (
		records    []models.AircraftRecord
		variations []models.Variation
	)

	if recordsPath != "" {
		file, err := os.Open(recordsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open CSV file %s: %w", recordsPath, err)
		}
		defer file.Close()

		records, err = ParseRecordsCSV(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", recordsPath, err)
		}
		slog.Info("Loaded aircraft records from CSV", "path", recordsPath, "count", len(records))
	}

	if variationsPath != "" {
		file, err := os.Open(variationsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open CSV file %s: %w", variationsPath, err)
		}
		defer file.Close()

		variations, err = ParseVariationsCSV(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", variationsPath, err)
		}
		slog.Info("Loaded model variations from CSV", "path", variationsPath, "count", len(variations))
	}

	return records, variations, nil
}
