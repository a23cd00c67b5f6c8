package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"flightriskradar/internal/models"
)

const weatherTimeout = 15 * time.Second

// DefaultLocations are the airports surveyed when none are given
var DefaultLocations = []models.Location{
	{Code: "SJC", City: "San Jose", State: "CA", Country: "US"},
	{Code: "LAX", City: "Los Angeles", State: "CA", Country: "US"},
	{Code: "JFK", City: "New York", State: "NY", Country: "US"},
	{Code: "ATL", City: "Atlanta", State: "GA", Country: "US"},
}

// WeatherClient queries the OpenWeatherMap current weather API
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherClient creates a client for the current weather endpoint at baseURL
func NewWeatherClient(baseURL, apiKey string) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: weatherTimeout,
		},
	}
}

// currentWeather holds the fields of the API response used for the summary
type currentWeather struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Params returns the query parameters sent for a location; the key is masked
func (c *WeatherClient) Params(loc models.Location) map[string]string {
	return map[string]string{
		"q":     fmt.Sprintf("%s,%s,%s", loc.City, loc.State, loc.Country),
		"appid": "***",
		"units": "imperial",
	}
}

// Current fetches current conditions in imperial units (°F, mph)
func (c *WeatherClient) Current(ctx context.Context, loc models.Location) (int, map[string]any, *models.WeatherSummary, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s,%s,%s", loc.City, loc.State, loc.Country))
	query.Set("appid", c.apiKey)
	query.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error repeats the request URL, which carries the API key
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return 0, nil, nil, fmt.Errorf("error making request to weather API %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return resp.StatusCode, nil, nil, fmt.Errorf("JSON parsing failed: %w", err)
	}

	var cw currentWeather
	if err := json.Unmarshal(body, &cw); err != nil {
		return resp.StatusCode, raw, nil, fmt.Errorf("JSON parsing failed: %w", err)
	}

	summary := &models.WeatherSummary{
		TempF:       cw.Main.Temp,
		HumidityPct: cw.Main.Humidity,
		WindMPH:     cw.Wind.Speed,
		Description: "Unknown",
	}
	if len(cw.Weather) > 0 && cw.Weather[0].Description != "" {
		summary.Description = cw.Weather[0].Description
	}

	return resp.StatusCode, raw, summary, nil
}

// RunWeatherSurvey queries each location in turn. Failures are recorded in
// the location's result and never stop the survey.
func RunWeatherSurvey(ctx context.Context, client *WeatherClient, locations []models.Location, now func() time.Time) map[string]models.WeatherResult {
	results := make(map[string]models.WeatherResult, len(locations))

	for _, loc := range locations {
		slog.Info("Querying current weather", "airport", loc.Code, "city", loc.City)

		status, raw, summary, err := client.Current(ctx, loc)
		result := models.WeatherResult{
			AirportInfo:    loc,
			RequestParams:  client.Params(loc),
			ResponseStatus: status,
			RawResponse:    raw,
			Summary:        summary,
			Timestamp:      now(),
		}
		if err != nil {
			slog.Warn("Weather request failed", "airport", loc.Code, "error", err)
			result.Error = err.Error()
			result.Summary = nil
		}

		results[loc.Code] = result
	}

	return results
}

// WriteWeatherSummary prints one line per airport plus success/failure totals
func WriteWeatherSummary(w io.Writer, locations []models.Location, results map[string]models.WeatherResult) {
	succeeded, failed := 0, 0
	for _, loc := range locations {
		r, ok := results[loc.Code]
		if !ok {
			continue
		}
		if r.Error != "" {
			failed++
			fmt.Fprintf(w, "%s (%s): request failed: %s\n", loc.Code, loc.City, r.Error)
			continue
		}
		succeeded++
		fmt.Fprintf(w, "%s (%s): %s, %.1f°F, humidity %.0f%%, wind %.1f mph\n",
			loc.Code, loc.City, r.Summary.Description, r.Summary.TempF, r.Summary.HumidityPct, r.Summary.WindMPH)
	}

	fmt.Fprintf(w, "Total airports tested: %d\n", len(locations))
	fmt.Fprintf(w, "Successful responses: %d\n", succeeded)
	fmt.Fprintf(w, "Failed responses: %d\n", failed)
}
