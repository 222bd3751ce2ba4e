package gorm

import (
	"time"

	"flight-tracker/flightboard/internal/models/entities"
)

type Flight struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FlightNumber  string    `gorm:"column:flight_number;type:varchar(20);not null"`
	Airline       string    `gorm:"column:airline;type:varchar(100);not null"`
	Origin        string    `gorm:"column:origin;type:varchar(100);not null"`
	Destination   string    `gorm:"column:destination;type:varchar(100);not null"`
	DepartureTime time.Time `gorm:"column:departure_time;not null;index"`
	ArrivalTime   time.Time `gorm:"column:arrival_time;not null"`
	Status        string    `gorm:"column:status;type:varchar(50);not null;default:scheduled;check:chk_flights_status,status IN ('scheduled','boarding','departed','in-flight','arrived','delayed','cancelled')"`
	Gate          *string   `gorm:"column:gate;type:varchar(10)"`
	Terminal      *string   `gorm:"column:terminal;type:varchar(10)"`
	Aircraft      *string   `gorm:"column:aircraft;type:varchar(50)"`
	Notes         *string   `gorm:"column:notes;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

func (f *Flight) ToEntity() *entities.Flight {
	return &entities.Flight{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Airline:       f.Airline,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Status:        entities.FlightStatus(f.Status),
		Gate:          f.Gate,
		Terminal:      f.Terminal,
		Aircraft:      f.Aircraft,
		Notes:         f.Notes,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func FlightFromEntity(e *entities.Flight) *Flight {
	return &Flight{
		ID:            e.ID,
		FlightNumber:  e.FlightNumber,
		Airline:       e.Airline,
		Origin:        e.Origin,
		Destination:   e.Destination,
		DepartureTime: e.DepartureTime,
		ArrivalTime:   e.ArrivalTime,
		Status:        string(e.Status),
		Gate:          e.Gate,
		Terminal:      e.Terminal,
		Aircraft:      e.Aircraft,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
