package models

// AircraftRecord is the image metadata served for a canonical aircraft code
type AircraftRecord struct {
	Code         string `json:"-" csv:"code"`                      // Canonical code, e.g. B737
	Name         string `json:"name" csv:"name"`                   // Display name
	ImageURL     string `json:"image_url" csv:"image_url"`         // Full size image
	ThumbnailURL string `json:"thumbnail_url" csv:"thumbnail_url"` // Thumbnail image
}

// Variation maps a free-text model name to a canonical code.
// The code may name a family with no AircraftRecord (e.g. A321NEO).
type Variation struct {
	Name string `csv:"name"` // Free-text model name, e.g. "Boeing 737-800"
	Code string `csv:"code"` // Canonical code
}

// AircraftImageResponse is the success body of the aircraft images endpoint
type AircraftImageResponse struct {
	Success       bool           `json:"success"`
	AircraftModel string         `json:"aircraft_model"`
	AircraftCode  string         `json:"aircraft_code"`
	Data          AircraftRecord `json:"data"`
}

// ErrorResponse is the failure body of the aircraft images endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
