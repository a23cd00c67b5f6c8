package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flightriskradar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}

func flightRiskServer(t *testing.T, status int, response string, got *models.FlightRiskRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTomorrow(t *testing.T) {
	assert.Equal(t, "2026-10-20", Tomorrow(fixedNow()))
	assert.Equal(t, "2027-01-01", Tomorrow(time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)))
}

func TestRequestBuilders(t *testing.T) {
	req := AnalyzeFlightRisk("WN1125", "WN", "Southwest Airlines", "2026-10-20")
	assert.Equal(t, models.ActionAnalyzeFlightRisk, req.Action)
	assert.Equal(t, "WN1125", req.FlightNumber)

	req = LookupSpecificFlight("WN1125", "WN", "Southwest Airlines", "2026-10-20")
	assert.Equal(t, models.ActionLookupSpecificFlight, req.Action)

	req = SearchFlights("SJC", "LAX", "2026-10-20")
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"search_flights","origin":"SJC","destination":"LAX","date":"2026-10-20"}`, string(raw))
}

func TestFlightRiskClient_Timeout(t *testing.T) {
	c := NewFlightRiskClient("http://unused", 0)
	assert.Equal(t, 60*time.Second, c.Timeout(models.ActionAnalyzeFlightRisk))
	assert.Equal(t, 120*time.Second, c.Timeout(models.ActionLookupSpecificFlight))
	assert.Equal(t, 180*time.Second, c.Timeout(models.ActionSearchFlights))
	assert.Equal(t, 60*time.Second, c.Timeout("other"))

	c = NewFlightRiskClient("http://unused", 5*time.Second)
	assert.Equal(t, 5*time.Second, c.Timeout(models.ActionSearchFlights))
}

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		action string
		want   models.ProviderDetection
	}{
		{
			name:   "openweather only",
			text:   `{"source":"Real-time weather data from OpenWeatherMap"}`,
			action: models.ActionLookupSpecificFlight,
			want:   models.ProviderDetection{OpenWeather: true, Verdict: VerdictOpenWeather},
		},
		{
			name:   "serpapi wins when both present",
			text:   `{"a":"openweather","b":"https://serpapi.com/search"}`,
			action: models.ActionSearchFlights,
			want:   models.ProviderDetection{OpenWeather: true, SerpAPI: true, Verdict: VerdictSerpAPI},
		},
		{
			name:   "serpapi ignored next to openweather for analyze",
			text:   `{"a":"OpenWeatherMap","b":"SerpAPI fallback disabled"}`,
			action: models.ActionAnalyzeFlightRisk,
			want:   models.ProviderDetection{OpenWeather: true, Verdict: VerdictOpenWeather},
		},
		{
			name:   "lookup matches case-sensitively",
			text:   `{"source":"openweathermap api","fallback":"serpapi"}`,
			action: models.ActionLookupSpecificFlight,
			want:   models.ProviderDetection{Verdict: VerdictUnclear},
		},
		{
			name:   "lookup upper-case indicator",
			text:   `{"provider":"OPENWEATHERMAP"}`,
			action: models.ActionLookupSpecificFlight,
			want:   models.ProviderDetection{OpenWeather: true, Verdict: VerdictOpenWeather},
		},
		{
			name:   "analyze matches case-sensitively",
			text:   `{"source":"openweathermap"}`,
			action: models.ActionAnalyzeFlightRisk,
			want:   models.ProviderDetection{Verdict: VerdictUnclear},
		},
		{
			name:   "route search ignores case",
			text:   `{"source":"OpenWeather One Call"}`,
			action: models.ActionSearchFlights,
			want:   models.ProviderDetection{OpenWeather: true, Verdict: VerdictOpenWeather},
		},
		{
			name:   "nothing",
			text:   `{"risk":"low"}`,
			action: models.ActionAnalyzeFlightRisk,
			want:   models.ProviderDetection{Verdict: VerdictUnclear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProvider(tt.text, IndicatorsFor(tt.action)))
		})
	}
}

func TestRunFlightRisk_Analyze(t *testing.T) {
	var got models.FlightRiskRequest
	srv := flightRiskServer(t, http.StatusOK, `{"success":true,"weather":{"provider":"OpenWeatherMap API"}}`, &got)

	client := NewFlightRiskClient(srv.URL, time.Second)
	req := AnalyzeFlightRisk("WN1125", "WN", "Southwest Airlines", Tomorrow(fixedNow()))

	report, err := RunFlightRisk(context.Background(), client, req, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, req, got)
	assert.Equal(t, http.StatusOK, report.ResponseStatus)
	assert.True(t, report.OpenWeather)
	assert.False(t, report.SerpAPI)
	assert.Equal(t, VerdictOpenWeather, report.Verdict)
	assert.Equal(t, []string{"OpenWeatherMap API"}, report.WeatherSources)
	assert.Nil(t, report.RequestSucceeded)
	assert.Equal(t, fixedNow(), report.Timestamp)
}

func TestRunFlightRisk_RouteSearch(t *testing.T) {
	body := `{"success":true,"flights":[
		{"number":"WN1","weather":"clear"},
		{"number":"WN2"},
		{"number":"WN3","notes":"Weather delay"},
		{"number":"WN4","weather":"rain"}
	],"source":"openweather"}`
	srv := flightRiskServer(t, http.StatusOK, body, nil)

	report, err := RunFlightRisk(context.Background(), NewFlightRiskClient(srv.URL, time.Second),
		SearchFlights("SJC", "LAX", "2026-10-20"), fixedNow)
	require.NoError(t, err)

	require.NotNil(t, report.RequestSucceeded)
	assert.True(t, *report.RequestSucceeded)
	require.NotNil(t, report.FlightsWithWeather)
	assert.Equal(t, 2, *report.FlightsWithWeather)
	assert.Equal(t, VerdictOpenWeather, report.Verdict)
}

func TestRunFlightRisk_RouteSearchFailed(t *testing.T) {
	srv := flightRiskServer(t, http.StatusOK, `{"success":false,"error":"no flights"}`, nil)

	report, err := RunFlightRisk(context.Background(), NewFlightRiskClient(srv.URL, time.Second),
		SearchFlights("SJC", "LAX", "2026-10-20"), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, VerdictRequestFailed, report.Verdict)
	assert.Nil(t, report.FlightsWithWeather)

	var buf bytes.Buffer
	WriteFlightRiskSummary(&buf, report)
	assert.Contains(t, buf.String(), "Request successful: false")
	assert.Contains(t, buf.String(), "Error: no flights")
	assert.Contains(t, buf.String(), "Request failed")
}

func TestRunFlightRisk_UnexpectedStatus(t *testing.T) {
	srv := flightRiskServer(t, http.StatusBadGateway, "upstream down", nil)

	_, err := RunFlightRisk(context.Background(), NewFlightRiskClient(srv.URL, time.Second),
		AnalyzeFlightRisk("WN1125", "WN", "Southwest Airlines", "2026-10-20"), fixedNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestRunFlightRisk_InvalidJSON(t *testing.T) {
	srv := flightRiskServer(t, http.StatusOK, "<html>", nil)

	_, err := RunFlightRisk(context.Background(), NewFlightRiskClient(srv.URL, time.Second),
		AnalyzeFlightRisk("WN1125", "WN", "Southwest Airlines", "2026-10-20"), fixedNow)
	assert.Error(t, err)
}

func TestWriteFlightRiskSummary(t *testing.T) {
	report := &models.FlightRiskReport{
		ProviderDetection: models.ProviderDetection{SerpAPI: true, Verdict: VerdictSerpAPI},
		Request:           LookupSpecificFlight("WN1125", "WN", "Southwest Airlines", "2026-10-20"),
		ResponseStatus:    http.StatusOK,
	}

	var buf bytes.Buffer
	WriteFlightRiskSummary(&buf, report)
	out := buf.String()
	assert.Contains(t, out, "Flight: WN1125")
	assert.Contains(t, out, "SerpAPI detected: true")
	assert.Contains(t, out, "WARNING")
}

func TestReportFile(t *testing.T) {
	assert.Equal(t, AnalyzeReportFile, ReportFile(models.ActionAnalyzeFlightRisk))
	assert.Equal(t, LookupReportFile, ReportFile(models.ActionLookupSpecificFlight))
	assert.Equal(t, RouteReportFile, ReportFile(models.ActionSearchFlights))
}

func TestRunWeatherSurvey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Equal(t, "imperial", q.Get("units"))

		switch q.Get("q") {
		case "San Jose,CA,US":
			w.Write([]byte(`{"name":"San Jose","main":{"temp":68.5,"humidity":40},"weather":[{"description":"clear sky"}],"wind":{"speed":5.8}}`))
		case "Atlanta,GA,US":
			w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	}))
	defer srv.Close()

	locations := []models.Location{
		DefaultLocations[0],
		DefaultLocations[2],
		DefaultLocations[3],
	}

	client := NewWeatherClient(srv.URL, "test-key")
	results := RunWeatherSurvey(context.Background(), client, locations, fixedNow)
	require.Len(t, results, 3)

	sjc := results["SJC"]
	assert.Empty(t, sjc.Error)
	assert.Equal(t, http.StatusOK, sjc.ResponseStatus)
	require.NotNil(t, sjc.Summary)
	assert.Equal(t, "clear sky", sjc.Summary.Description)
	assert.InDelta(t, 68.5, sjc.Summary.TempF, 0.001)
	assert.InDelta(t, 40, sjc.Summary.HumidityPct, 0.001)
	assert.InDelta(t, 5.8, sjc.Summary.WindMPH, 0.001)
	assert.Equal(t, "San Jose", sjc.RawResponse["name"])
	assert.Equal(t, "***", sjc.RequestParams["appid"])

	jfk := results["JFK"]
	assert.Contains(t, jfk.Error, "404")
	assert.Nil(t, jfk.Summary)

	atl := results["ATL"]
	assert.Contains(t, atl.Error, "JSON parsing failed")

	var buf bytes.Buffer
	WriteWeatherSummary(&buf, locations, results)
	out := buf.String()
	assert.Contains(t, out, "SJC (San Jose): clear sky, 68.5°F")
	assert.Contains(t, out, "Successful responses: 1")
	assert.Contains(t, out, "Failed responses: 2")
}

func TestSaveReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := SaveReport(dir, WeatherReportFile, map[string]int{"SJC": 1})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, WeatherReportFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"SJC\": 1"))
}

func TestWeatherClient_TransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	closedURL := srv.URL + "/weather"
	srv.Close()

	client := NewWeatherClient(closedURL, "SECRETKEY123")
	results := RunWeatherSurvey(context.Background(), client, DefaultLocations[:1], fixedNow)

	sjc := results["SJC"]
	require.NotEmpty(t, sjc.Error)
	assert.NotContains(t, sjc.Error, "SECRETKEY123")
	assert.NotContains(t, sjc.Error, "appid")
	assert.Contains(t, sjc.Error, closedURL)

	path, err := SaveReport(t.TempDir(), WeatherReportFile, results)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "SECRETKEY123")
}
