package models

import "time"

// Flight risk function actions
const (
	ActionAnalyzeFlightRisk    = "analyze_flight_risk"
	ActionLookupSpecificFlight = "lookup_specific_flight"
	ActionSearchFlights        = "search_flights"
)

// FlightRiskRequest is the JSON payload accepted by the deployed flight risk function.
// Flight fields are used by analyze/lookup, route fields by search.
type FlightRiskRequest struct {
	Action       string `json:"action"`
	FlightNumber string `json:"flight_number,omitempty"`
	AirlineCode  string `json:"airline_code,omitempty"`
	AirlineName  string `json:"airline_name,omitempty"`
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
	Date         string `json:"date"` // YYYY-MM-DD
}

// ProviderDetection records which weather provider left traces in a response
type ProviderDetection struct {
	OpenWeather bool   `json:"openweather_detected"`
	SerpAPI     bool   `json:"serpapi_detected"`
	Verdict     string `json:"verdict"`
}

// FlightRiskReport is what gets saved after calling the flight risk function
type FlightRiskReport struct {
	ProviderDetection

	Request            FlightRiskRequest `json:"request"`
	ResponseStatus     int               `json:"response_status"`
	ResponseData       map[string]any    `json:"response_data"`
	WeatherSources     []string          `json:"weather_sources_found,omitempty"`
	RequestSucceeded   *bool             `json:"request_success,omitempty"`
	FlightsWithWeather *int              `json:"flights_with_weather,omitempty"`
	Timestamp          time.Time         `json:"timestamp"`
}

// Location is a city/state/country triple as accepted by the weather API
type Location struct {
	Code    string `json:"code"` // Airport code
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// WeatherSummary holds the fields printed for a current weather observation
type WeatherSummary struct {
	Description string  `json:"description"`
	TempF       float64 `json:"temp_f"`
	HumidityPct float64 `json:"humidity_pct"`
	WindMPH     float64 `json:"wind_mph"`
}

// WeatherResult is one airport's entry in the weather survey report
type WeatherResult struct {
	AirportInfo    Location          `json:"airport_info"`
	RequestParams  map[string]string `json:"request_params,omitempty"`
	ResponseStatus int               `json:"response_status,omitempty"`
	RawResponse    map[string]any    `json:"raw_response,omitempty"`
	Summary        *WeatherSummary   `json:"summary,omitempty"`
	Error          string            `json:"error,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}
