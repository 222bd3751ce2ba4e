package api

import (
	"context"
	"time"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"
)

// FlightService is what the flight handlers need from the service layer.
type FlightService interface {
	List(ctx context.Context) ([]entities.Flight, error)
	Get(ctx context.Context, id int64) (*entities.Flight, error)
	Create(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error)
	Update(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error)
	Delete(ctx context.Context, id int64) (*entities.Flight, error)
}

// Pinger checks a backing service for readiness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Dependencies struct {
	Flights     FlightService
	DB          Pinger
	Cache       Pinger // nil when the cache is in-process
	Environment string
	Production  bool
	UpSince     time.Time
	PingTimeout time.Duration
}
