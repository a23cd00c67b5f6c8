package catalog

import "flightriskradar/internal/models"

const imageBaseURL = "https://storage.googleapis.com/flightriskradar-aircraft-images"

// GenericCode is reported when a model cannot be matched to a record
const GenericCode = "GENERIC"

var generic = models.AircraftRecord{
	Code:         GenericCode,
	Name:         "Generic Aircraft",
	ImageURL:     imageBaseURL + "/generic-aircraft.jpg",
	ThumbnailURL: imageBaseURL + "/thumbnails/generic-aircraft-thumb.jpg",
}

// GenericRecord returns the fallback record served for unknown models
func GenericRecord() models.AircraftRecord {
	return generic
}

func record(code, name, slug string) models.AircraftRecord {
	return models.AircraftRecord{
		Code:         code,
		Name:         name,
		ImageURL:     imageBaseURL + "/" + slug + ".jpg",
		ThumbnailURL: imageBaseURL + "/thumbnails/" + slug + "-thumb.jpg",
	}
}

var defaultRecords = []models.AircraftRecord{
	// Boeing
	record("B737", "Boeing 737", "boeing-737"),
	record("B737MAX", "Boeing 737 MAX", "boeing-737-max"),
	record("B747", "Boeing 747", "boeing-747"),
	record("B757", "Boeing 757", "boeing-757"),
	record("B767", "Boeing 767", "boeing-767"),
	record("B777", "Boeing 777", "boeing-777"),
	record("B787", "Boeing 787 Dreamliner", "boeing-787"),

	// Airbus
	record("A319", "Airbus A319", "airbus-a319"),
	record("A320", "Airbus A320", "airbus-a320"),
	record("A321", "Airbus A321", "airbus-a321"),
	record("A320NEO", "Airbus A320neo", "airbus-a320neo"),
	record("A330", "Airbus A330", "airbus-a330"),
	record("A350", "Airbus A350", "airbus-a350"),
	record("A380", "Airbus A380", "airbus-a380"),

	// Embraer
	record("E175", "Embraer E175", "embraer-e175"),
	record("E190", "Embraer E190", "embraer-e190"),

	// Bombardier
	record("CRJ700", "Bombardier CRJ700", "bombardier-crj700"),
	record("CRJ900", "Bombardier CRJ900", "bombardier-crj900"),
}

// Order matters: the substring scan returns the first hit.
var defaultVariations = []models.Variation{
	// Boeing
	{Name: "Boeing 737", Code: "B737"},
	{Name: "Boeing 737-800", Code: "B737"},
	{Name: "Boeing 737-900", Code: "B737"},
	{Name: "Boeing 737-700", Code: "B737"},
	{Name: "Boeing 737 MAX", Code: "B737MAX"},
	{Name: "Boeing 737 MAX 8", Code: "B737MAX"},
	{Name: "Boeing 737 MAX 9", Code: "B737MAX"},
	{Name: "Boeing 747", Code: "B747"},
	{Name: "Boeing 747-400", Code: "B747"},
	{Name: "Boeing 747-8", Code: "B747"},
	{Name: "Boeing 757", Code: "B757"},
	{Name: "Boeing 757-200", Code: "B757"},
	{Name: "Boeing 767", Code: "B767"},
	{Name: "Boeing 767-300", Code: "B767"},
	{Name: "Boeing 777", Code: "B777"},
	{Name: "Boeing 777-200", Code: "B777"},
	{Name: "Boeing 777-300", Code: "B777"},
	{Name: "Boeing 787", Code: "B787"},
	{Name: "Boeing 787 Dreamliner", Code: "B787"},

	// Airbus
	{Name: "Airbus A319", Code: "A319"},
	{Name: "Airbus A320", Code: "A320"},
	{Name: "Airbus A321", Code: "A321"},
	{Name: "Airbus A320neo", Code: "A320NEO"},
	{Name: "Airbus A321neo", Code: "A321NEO"}, // no record, served as generic
	{Name: "Airbus A330", Code: "A330"},
	{Name: "Airbus A330-200", Code: "A330"},
	{Name: "Airbus A330-300", Code: "A330"},
	{Name: "Airbus A350", Code: "A350"},
	{Name: "Airbus A350-900", Code: "A350"},
	{Name: "Airbus A380", Code: "A380"},

	// Embraer
	{Name: "Embraer E175", Code: "E175"},
	{Name: "Embraer E190", Code: "E190"},

	// Bombardier
	{Name: "Bombardier CRJ700", Code: "CRJ700"},
	{Name: "Bombardier CRJ900", Code: "CRJ900"},

	// Short codes
	{Name: "737", Code: "B737"},
	{Name: "747", Code: "B747"},
	{Name: "757", Code: "B757"},
	{Name: "767", Code: "B767"},
	{Name: "777", Code: "B777"},
	{Name: "787", Code: "B787"},
	{Name: "A319", Code: "A319"},
	{Name: "A320", Code: "A320"},
	{Name: "A321", Code: "A321"},
	{Name: "A330", Code: "A330"},
	{Name: "A350", Code: "A350"},
	{Name: "A380", Code: "A380"},
}

// DefaultRecords returns a copy of the built-in aircraft records
func DefaultRecords() []models.AircraftRecord {
	return append([]models.AircraftRecord(nil), defaultRecords...)
}

// DefaultVariations returns a copy of the built-in variation table
func DefaultVariations() []models.Variation {
	return append([]models.Variation(nil), defaultVariations...)
}

// Default builds the catalog from the built-in tables
func Default() *Catalog {
	c, err := New(defaultRecords, defaultVariations)
	if err != nil {
		panic("catalog: invalid built-in tables: " + err.Error())
	}
	return c
}
