package catalog

import (
	"testing"

	"flightriskradar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		model  string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"canonical code", "B737", "B737", true},
		{"canonical code with suffix", "B737MAX", "B737MAX", true},
		{"exact variation", "Boeing 737 MAX 8", "B737MAX", true},
		{"short code variation", "777", "B777", true},
		{"case-insensitive substring", "boeing 777-300er", "B777", true},
		{"input contained in variation", "dreamliner", "B787", true},
		{"lowercase canonical falls through to scan", "a320", "A320", true},
		{"family without record", "Airbus A321neo", "A321NEO", true},
		{"no match", "Cessna 172", "", false},
		{"unknown", "UFO9000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Resolve(tt.model)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// "Boeing 737 MAX 9 passenger" contains both "Boeing 737" and
	// "Boeing 737 MAX 9"; the earlier entry is returned.
	c := Default()

	code, ok := c.Resolve("Boeing 737 MAX 9 passenger")
	require.True(t, ok)
	assert.Equal(t, "B737", code)

	reordered, err := New(DefaultRecords(), []models.Variation{
		{Name: "Boeing 737 MAX", Code: "B737MAX"},
		{Name: "Boeing 737", Code: "B737"},
	})
	require.NoError(t, err)

	code, ok = reordered.Resolve("Boeing 737 MAX 9 passenger")
	require.True(t, ok)
	assert.Equal(t, "B737MAX", code)
}

func TestLookup(t *testing.T) {
	c := Default()

	code, rec, ok := c.Lookup("A320")
	assert.True(t, ok)
	assert.Equal(t, "A320", code)
	assert.Equal(t, "Airbus A320", rec.Name)
	assert.Contains(t, rec.ImageURL, "airbus-a320.jpg")
	assert.Contains(t, rec.ThumbnailURL, "thumbnails/airbus-a320-thumb.jpg")

	code, rec, ok = c.Lookup("UFO9000")
	assert.False(t, ok)
	assert.Equal(t, GenericCode, code)
	assert.Equal(t, GenericRecord(), rec)

	code, rec, ok = c.Lookup("Airbus A321neo")
	assert.False(t, ok)
	assert.Equal(t, GenericCode, code)
	assert.Equal(t, "Generic Aircraft", rec.Name)
}

func TestLookup_Idempotent(t *testing.T) {
	c := Default()

	code1, rec1, ok1 := c.Lookup("boeing 777-300er")
	code2, rec2, ok2 := c.Lookup("boeing 777-300er")
	assert.Equal(t, code1, code2)
	assert.Equal(t, rec1, rec2)
	assert.Equal(t, ok1, ok2)
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]models.AircraftRecord{{Code: "B737"}, {Code: "B737"}}, nil)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = New(nil, []models.Variation{{Name: "737", Code: "B737"}, {Name: "737", Code: "B747"}})
	assert.ErrorIs(t, err, ErrDuplicateVariation)

	_, err = New([]models.AircraftRecord{{Name: "No code"}}, nil)
	assert.Error(t, err)

	_, err = New(nil, []models.Variation{{Name: "737"}})
	assert.Error(t, err)
}

func TestDefault_Tables(t *testing.T) {
	c := Default()

	records := c.Records()
	require.Len(t, records, 18)
	assert.Equal(t, "B737", records[0].Code)
	assert.Equal(t, "CRJ900", records[len(records)-1].Code)

	variations := c.Variations()
	require.Len(t, variations, 46)
	assert.Equal(t, "Boeing 737", variations[0].Name)

	// Copies must not leak into the catalog
	variations[0].Code = "XXX"
	assert.Equal(t, "B737", c.Variations()[0].Code)

	_, ok := c.Record("A321NEO")
	assert.False(t, ok)
}
