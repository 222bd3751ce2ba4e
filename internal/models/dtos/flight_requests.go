package dtos

import (
	"time"

	"flight-tracker/flightboard/internal/models/entities"
)

// NewFlightInput is the POST /api/flights body.
type NewFlightInput struct {
	FlightNumber  string                `json:"flightNumber" validate:"required,max=20"`
	Airline       string                `json:"airline" validate:"required,max=100"`
	Origin        string                `json:"origin" validate:"required,max=100"`
	Destination   string                `json:"destination" validate:"required,max=100"`
	DepartureTime time.Time             `json:"departureTime" validate:"required"`
	ArrivalTime   time.Time             `json:"arrivalTime" validate:"required"`
	Status        entities.FlightStatus `json:"status,omitempty" validate:"omitempty,flight_status"`
	Gate          *string               `json:"gate,omitempty" validate:"omitnil,max=10"`
	Terminal      *string               `json:"terminal,omitempty" validate:"omitnil,max=10"`
	Aircraft      *string               `json:"aircraft,omitempty" validate:"omitnil,max=50"`
	Notes         *string               `json:"notes,omitempty"`
}

// FlightUpdateInput is the PUT /api/flights/{id} body. Absent fields are left
// untouched; null clears gate, terminal, aircraft and notes and is ignored
// for the required fields.
type FlightUpdateInput struct {
	FlightNumber  *string                `json:"flightNumber,omitempty" validate:"omitnil,min=1,max=20"`
	Airline       *string                `json:"airline,omitempty" validate:"omitnil,min=1,max=100"`
	Origin        *string                `json:"origin,omitempty" validate:"omitnil,min=1,max=100"`
	Destination   *string                `json:"destination,omitempty" validate:"omitnil,min=1,max=100"`
	DepartureTime *time.Time             `json:"departureTime,omitempty"`
	ArrivalTime   *time.Time             `json:"arrivalTime,omitempty"`
	Status        *entities.FlightStatus `json:"status,omitempty" validate:"omitnil,flight_status"`
	Gate          NullString             `json:"gate,omitzero" validate:"omitempty,max=10"`
	Terminal      NullString             `json:"terminal,omitzero" validate:"omitempty,max=10"`
	Aircraft      NullString             `json:"aircraft,omitzero" validate:"omitempty,max=50"`
	Notes         NullString             `json:"notes,omitzero"`
}

// IsEmpty reports whether the update carries no fields at all.
func (in *FlightUpdateInput) IsEmpty() bool {
	return in.FlightNumber == nil && in.Airline == nil && in.Origin == nil &&
		in.Destination == nil && in.DepartureTime == nil && in.ArrivalTime == nil &&
		in.Status == nil && !in.Gate.Set && !in.Terminal.Set &&
		!in.Aircraft.Set && !in.Notes.Set
}

// Columns maps the supplied fields to their column names.
func (in *FlightUpdateInput) Columns() map[string]any {
	cols := make(map[string]any)
	if in.FlightNumber != nil {
		cols["flight_number"] = *in.FlightNumber
	}
	if in.Airline != nil {
		cols["airline"] = *in.Airline
	}
	if in.Origin != nil {
		cols["origin"] = *in.Origin
	}
	if in.Destination != nil {
		cols["destination"] = *in.Destination
	}
	if in.DepartureTime != nil {
		cols["departure_time"] = *in.DepartureTime
	}
	if in.ArrivalTime != nil {
		cols["arrival_time"] = *in.ArrivalTime
	}
	if in.Status != nil {
		cols["status"] = string(*in.Status)
	}
	if in.Gate.Set {
		cols["gate"] = in.Gate.column()
	}
	if in.Terminal.Set {
		cols["terminal"] = in.Terminal.column()
	}
	if in.Aircraft.Set {
		cols["aircraft"] = in.Aircraft.column()
	}
	if in.Notes.Set {
		cols["notes"] = in.Notes.column()
	}
	return cols
}
