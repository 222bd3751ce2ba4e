package entities

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusBoarding  FlightStatus = "boarding"
	FlightStatusDeparted  FlightStatus = "departed"
	FlightStatusInFlight  FlightStatus = "in-flight"
	FlightStatusArrived   FlightStatus = "arrived"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

// FlightStatuses lists every status in display order.
var FlightStatuses = []FlightStatus{
	FlightStatusScheduled,
	FlightStatusBoarding,
	FlightStatusDeparted,
	FlightStatusInFlight,
	FlightStatusArrived,
	FlightStatusDelayed,
	FlightStatusCancelled,
}

func (s FlightStatus) Valid() bool {
	for _, known := range FlightStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Flight is one row of the flights table and its JSON representation.
type Flight struct {
	ID            int64        `json:"id"`
	FlightNumber  string       `json:"flightNumber"`
	Airline       string       `json:"airline"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureTime time.Time    `json:"departureTime"`
	ArrivalTime   time.Time    `json:"arrivalTime"`
	Status        FlightStatus `json:"status"`
	Gate          *string      `json:"gate"`
	Terminal      *string      `json:"terminal"`
	Aircraft      *string      `json:"aircraft"`
	Notes         *string      `json:"notes"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
