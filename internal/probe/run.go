package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"flightriskradar/internal/models"
)

// Report file names, one per probe
const (
	AnalyzeReportFile = "deployed_function_test_response.json"
	LookupReportFile  = "direct_flight_test_response.json"
	RouteReportFile   = "route_search_test_response.json"
	WeatherReportFile = "openweather_test_results.json"
)

// ReportFile returns the report file name for an action
func ReportFile(action string) string {
	switch action {
	case models.ActionAnalyzeFlightRisk:
		return AnalyzeReportFile
	case models.ActionLookupSpecificFlight:
		return LookupReportFile
	default:
		return RouteReportFile
	}
}

// RunFlightRisk calls the function once and classifies the weather provider
// visible in its response.
func RunFlightRisk(ctx context.Context, client *FlightRiskClient, req models.FlightRiskRequest, now func() time.Time) (*models.FlightRiskReport, error) {
	status, data, err := client.Call(ctx, req)
	if err != nil {
		return nil, err
	}

	text, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response for scanning: %w", err)
	}

	report := &models.FlightRiskReport{
		ProviderDetection: DetectProvider(string(text), IndicatorsFor(req.Action)),
		Request:           req,
		ResponseStatus:    status,
		ResponseData:      data,
		Timestamp:         now(),
	}
	report.WeatherSources = weatherSources(report.ProviderDetection)

	if req.Action == models.ActionSearchFlights {
		success, _ := data["success"].(bool)
		report.RequestSucceeded = &success
		if !success && !report.SerpAPI {
			report.Verdict = VerdictRequestFailed
		}
		if n, ok := flightsWithWeather(data); ok {
			report.FlightsWithWeather = &n
		}
	}

	return report, nil
}

// WriteFlightRiskSummary prints a human readable summary of a report
func WriteFlightRiskSummary(w io.Writer, report *models.FlightRiskReport) {
	req := report.Request
	fmt.Fprintf(w, "Action: %s (date %s)\n", req.Action, req.Date)
	if req.FlightNumber != "" {
		fmt.Fprintf(w, "Flight: %s\n", req.FlightNumber)
	}
	if req.Origin != "" {
		fmt.Fprintf(w, "Route: %s -> %s\n", req.Origin, req.Destination)
	}
	fmt.Fprintf(w, "Response status: %d\n", report.ResponseStatus)
	fmt.Fprintf(w, "OpenWeatherMap detected: %t\n", report.OpenWeather)
	fmt.Fprintf(w, "SerpAPI detected: %t\n", report.SerpAPI)
	if report.RequestSucceeded != nil {
		fmt.Fprintf(w, "Request successful: %t\n", *report.RequestSucceeded)
		if errMsg, ok := report.ResponseData["error"]; ok && !*report.RequestSucceeded {
			fmt.Fprintf(w, "Error: %v\n", errMsg)
		}
	}
	if report.FlightsWithWeather != nil {
		fmt.Fprintf(w, "Flights with weather data (first 3): %d\n", *report.FlightsWithWeather)
	}

	switch report.Verdict {
	case VerdictOpenWeather:
		fmt.Fprintln(w, "SUCCESS: function is using OpenWeatherMap")
	case VerdictSerpAPI:
		fmt.Fprintln(w, "WARNING: function is still using SerpAPI")
	case VerdictRequestFailed:
		fmt.Fprintln(w, "Request failed - weather analysis may not have been triggered")
	default:
		fmt.Fprintln(w, "UNCLEAR: could not determine weather data source")
	}
}
