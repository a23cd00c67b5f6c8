package catalog

import (
	"errors"
	"fmt"
	"strings"

	"flightriskradar/internal/models"
)

var (
	ErrDuplicateCode      = errors.New("duplicate aircraft code")
	ErrDuplicateVariation = errors.New("duplicate variation name")
)

// Catalog resolves free-text aircraft model names to image records.
// It is immutable once built and safe for concurrent use.
type Catalog struct {
	records    map[string]models.AircraftRecord
	codes      []string // record insertion order
	variations []models.Variation
	byName     map[string]string
	upper      []string // upper-cased variation names, same index as variations
}

// New builds a catalog from records and an ordered variation table
func New(records []models.AircraftRecord, variations []models.Variation) (*Catalog, error) {
	c := &Catalog{
		records:    make(map[string]models.AircraftRecord, len(records)),
		codes:      make([]string, 0, len(records)),
		variations: make([]models.Variation, 0, len(variations)),
		byName:     make(map[string]string, len(variations)),
		upper:      make([]string, 0, len(variations)),
	}

	for _, r := range records {
		if r.Code == "" {
			return nil, fmt.Errorf("aircraft record %q has no code", r.Name)
		}
		if _, ok := c.records[r.Code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, r.Code)
		}
		c.records[r.Code] = r
		c.codes = append(c.codes, r.Code)
	}

	for _, v := range variations {
		if v.Name == "" || v.Code == "" {
			return nil, fmt.Errorf("variation %q -> %q is incomplete", v.Name, v.Code)
		}
		if _, ok := c.byName[v.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVariation, v.Name)
		}
		c.byName[v.Name] = v.Code
		c.variations = append(c.variations, v)
		c.upper = append(c.upper, strings.ToUpper(v.Name))
	}

	return c, nil
}

// Resolve converts a model string to a canonical code.
// Order: exact code, exact variation name, then a case-insensitive
// substring match in either direction over the variation table where
// the first entry wins.
func (c *Catalog) Resolve(model string) (string, bool) {
	if model == "" {
		return "", false
	}

	if _, ok := c.records[model]; ok {
		return model, true
	}

	if code, ok := c.byName[model]; ok {
		return code, true
	}

	modelUpper := strings.ToUpper(model)
	for i, name := range c.upper {
		if strings.Contains(modelUpper, name) || strings.Contains(name, modelUpper) {
			return c.variations[i].Code, true
		}
	}

	return "", false
}

// Lookup resolves a model and returns its record. When the model is unknown,
// or resolves to a code without a record, the generic record is returned
// with ok set to false.
func (c *Catalog) Lookup(model string) (string, models.AircraftRecord, bool) {
	code, ok := c.Resolve(model)
	if !ok {
		return GenericCode, generic, false
	}
	rec, ok := c.records[code]
	if !ok {
		return GenericCode, generic, false
	}
	return code, rec, true
}

// Record returns the record for a canonical code
func (c *Catalog) Record(code string) (models.AircraftRecord, bool) {
	rec, ok := c.records[code]
	return rec, ok
}

// Records returns all records in insertion order
func (c *Catalog) Records() []models.AircraftRecord {
	out := make([]models.AircraftRecord, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.records[code])
	}
	return out
}

// Variations returns a copy of the variation table in scan order
func (c *Catalog) Variations() []models.Variation {
	return append([]models.Variation(nil), c.variations...)
}
