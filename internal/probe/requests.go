package probe

import (
	"time"

	"flightriskradar/internal/models"
)

const dateLayout = "2006-01-02"

// Tomorrow formats the day after now; the function only fetches real-time
// weather for flights within the next seven days.
func Tomorrow(now time.Time) string {
	return now.AddDate(0, 0, 1).Format(dateLayout)
}

func AnalyzeFlightRisk(flightNumber, airlineCode, airlineName, date string) models.FlightRiskRequest {
	return models.FlightRiskRequest{
		Action:       models.ActionAnalyzeFlightRisk,
		FlightNumber: flightNumber,
		AirlineCode:  airlineCode,
		AirlineName:  airlineName,
		Date:         date,
	}
}

func LookupSpecificFlight(flightNumber, airlineCode, airlineName, date string) models.FlightRiskRequest {
	return models.FlightRiskRequest{
		Action:       models.ActionLookupSpecificFlight,
		FlightNumber: flightNumber,
		AirlineCode:  airlineCode,
		AirlineName:  airlineName,
		Date:         date,
	}
}

func SearchFlights(origin, destination, date string) models.FlightRiskRequest {
	return models.FlightRiskRequest{
		Action:      models.ActionSearchFlights,
		Origin:      origin,
		Destination: destination,
		Date:        date,
	}
}
