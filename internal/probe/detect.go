package probe

import (
	"encoding/json"
	"strings"

	"flightriskradar/internal/models"
)

// Verdicts reported by DetectProvider
const (
	VerdictOpenWeather   = "openweather"
	VerdictSerpAPI       = "serpapi"
	VerdictUnclear       = "unclear"
	VerdictRequestFailed = "request_failed"
)

// Indicators are the strings whose presence marks a weather provider in a response
type Indicators struct {
	OpenWeather []string
	SerpAPI     []string

	// SerpAPI only counts when no OpenWeather indicator is present
	SerpAPIUnlessOpenWeather bool

	// IgnoreCase matches indicators regardless of letter case
	IgnoreCase bool
}

// Per-action indicator sets
var actionIndicators = map[string]Indicators{
	models.ActionAnalyzeFlightRisk: {
		OpenWeather:              []string{"OpenWeatherMap"},
		SerpAPI:                  []string{"SerpAPI"},
		SerpAPIUnlessOpenWeather: true,
	},
	models.ActionLookupSpecificFlight: {
		OpenWeather: []string{"OpenWeatherMap API", "Real-time weather data from OpenWeatherMap", "OPENWEATHERMAP"},
		SerpAPI:     []string{"SerpAPI", "Real-time weather data from SerpAPI", "SERPAPI"},
	},
	models.ActionSearchFlights: {
		OpenWeather: []string{"OpenWeatherMap", "OPENWEATHERMAP", "openweather"},
		SerpAPI:     []string{"SerpAPI", "SERPAPI", "serpapi.com"},
		IgnoreCase:  true,
	},
}

// IndicatorsFor returns the indicator set used for an action
func IndicatorsFor(action string) Indicators {
	if ind, ok := actionIndicators[action]; ok {
		return ind
	}
	return actionIndicators[models.ActionSearchFlights]
}

// DetectProvider scans text for provider indicators
func DetectProvider(text string, ind Indicators) models.ProviderDetection {
	d := models.ProviderDetection{
		OpenWeather: containsAny(text, ind.OpenWeather, ind.IgnoreCase),
		SerpAPI:     containsAny(text, ind.SerpAPI, ind.IgnoreCase),
	}
	if ind.SerpAPIUnlessOpenWeather && d.OpenWeather {
		d.SerpAPI = false
	}

	switch {
	case d.SerpAPI:
		d.Verdict = VerdictSerpAPI
	case d.OpenWeather:
		d.Verdict = VerdictOpenWeather
	default:
		d.Verdict = VerdictUnclear
	}

	return d
}

func containsAny(text string, indicators []string, ignoreCase bool) bool {
	if ignoreCase {
		text = strings.ToLower(text)
	}
	for _, ind := range indicators {
		if ignoreCase {
			ind = strings.ToLower(ind)
		}
		if strings.Contains(text, ind) {
			return true
		}
	}
	return false
}

// weatherSources lists detected providers the way the report presents them
func weatherSources(d models.ProviderDetection) []string {
	var sources []string
	if d.OpenWeather {
		sources = append(sources, "OpenWeatherMap API")
	}
	if d.SerpAPI {
		sources = append(sources, "SerpAPI (should not be used)")
	}
	return sources
}

// flightsWithWeather counts how many of the first three flights mention weather
func flightsWithWeather(data map[string]any) (int, bool) {
	flights, ok := data["flights"].([]any)
	if !ok || len(flights) == 0 {
		return 0, false
	}

	count := 0
	for i, flight := range flights {
		if i == 3 {
			break
		}
		raw, err := json.Marshal(flight)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(raw)), "weather") {
			count++
		}
	}
	return count, true
}
