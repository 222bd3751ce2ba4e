package repositories

import (
	"context"
	"errors"
	"time"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"
)

var ErrFlightNotFound = errors.New("flight not found")

// FlightStore is the data access contract for the flights table.
type FlightStore interface {
	List(ctx context.Context) ([]entities.Flight, error)
	GetByID(ctx context.Context, id int64) (*entities.Flight, error)
	Create(ctx context.Context, flight *entities.Flight) error
	Update(ctx context.Context, id int64, in *dtos.FlightUpdateInput, updatedAt time.Time) (*entities.Flight, error)
	Delete(ctx context.Context, id int64) (*entities.Flight, error)
}

var (
	_ FlightStore = (*FlightRepository)(nil)
	_ FlightStore = (*FlightRepositoryGORM)(nil)
)
