package board

import (
	"time"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"
)

// Draft is the editable form behind the create/edit modal. Optional fields
// use "" for unset.
type Draft struct {
	FlightNumber  string
	Airline       string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Status        entities.FlightStatus
	Gate          string
	Terminal      string
	Aircraft      string
	Notes         string
}

func NewDraft() Draft {
	return Draft{Status: entities.FlightStatusScheduled}
}

func DraftFromFlight(f entities.Flight) Draft {
	return Draft{
		FlightNumber:  f.FlightNumber,
		Airline:       f.Airline,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Status:        f.Status,
		Gate:          deref(f.Gate),
		Terminal:      deref(f.Terminal),
		Aircraft:      deref(f.Aircraft),
		Notes:         deref(f.Notes),
	}
}

func (d Draft) NewFlightInput() *dtos.NewFlightInput {
	return &dtos.NewFlightInput{
		FlightNumber:  d.FlightNumber,
		Airline:       d.Airline,
		Origin:        d.Origin,
		Destination:   d.Destination,
		DepartureTime: d.DepartureTime,
		ArrivalTime:   d.ArrivalTime,
		Status:        d.Status,
		Gate:          optional(d.Gate),
		Terminal:      optional(d.Terminal),
		Aircraft:      optional(d.Aircraft),
		Notes:         optional(d.Notes),
	}
}

// UpdateInput carries only the fields that differ from orig. An optional
// field emptied in the draft is sent as null.
func (d Draft) UpdateInput(orig entities.Flight) *dtos.FlightUpdateInput {
	in := &dtos.FlightUpdateInput{}
	if d.FlightNumber != orig.FlightNumber {
		in.FlightNumber = &d.FlightNumber
	}
	if d.Airline != orig.Airline {
		in.Airline = &d.Airline
	}
	if d.Origin != orig.Origin {
		in.Origin = &d.Origin
	}
	if d.Destination != orig.Destination {
		in.Destination = &d.Destination
	}
	if !d.DepartureTime.Equal(orig.DepartureTime) {
		in.DepartureTime = &d.DepartureTime
	}
	if !d.ArrivalTime.Equal(orig.ArrivalTime) {
		in.ArrivalTime = &d.ArrivalTime
	}
	if d.Status != orig.Status {
		in.Status = &d.Status
	}
	if d.Gate != deref(orig.Gate) {
		in.Gate = clearable(d.Gate)
	}
	if d.Terminal != deref(orig.Terminal) {
		in.Terminal = clearable(d.Terminal)
	}
	if d.Aircraft != deref(orig.Aircraft) {
		in.Aircraft = clearable(d.Aircraft)
	}
	if d.Notes != deref(orig.Notes) {
		in.Notes = clearable(d.Notes)
	}
	return in
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clearable(s string) dtos.NullString {
	if s == "" {
		return dtos.ClearString()
	}
	return dtos.SetString(s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
