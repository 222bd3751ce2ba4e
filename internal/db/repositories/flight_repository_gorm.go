package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"
	gormModels "flight-tracker/flightboard/internal/models/gorm"

	"gorm.io/gorm"
)

// FlightRepositoryGORM implements FlightStore on GORM. Update and Delete
// pair the lookup with the write inside one transaction.
type FlightRepositoryGORM struct {
	db *gorm.DB
}

// NewFlightRepositoryGORM creates a new GORM-based flight repository
func NewFlightRepositoryGORM(db *gorm.DB) *FlightRepositoryGORM {
	return &FlightRepositoryGORM{db: db}
}

func (r *FlightRepositoryGORM) List(ctx context.Context) ([]entities.Flight, error) {
	var rows []gormModels.Flight

	err := r.db.WithContext(ctx).
		Order("departure_time DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	flights := make([]entities.Flight, 0, len(rows))
	for i := range rows {
		flights = append(flights, *rows[i].ToEntity())
	}
	return flights, nil
}

func (r *FlightRepositoryGORM) GetByID(ctx context.Context, id int64) (*entities.Flight, error) {
	var row gormModels.Flight

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to fetch flight %d: %w", id, err)
	}
	return row.ToEntity(), nil
}

func (r *FlightRepositoryGORM) Create(ctx context.Context, flight *entities.Flight) error {
	row := gormModels.FlightFromEntity(flight)
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}

	*flight = *row.ToEntity()
	return nil
}

func (r *FlightRepositoryGORM) Update(ctx context.Context, id int64, in *dtos.FlightUpdateInput, updatedAt time.Time) (*entities.Flight, error) {
	cols := in.Columns()
	cols["updated_at"] = updatedAt

	var updated gormModels.Flight
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&gormModels.Flight{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFlightNotFound
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to update flight %d: %w", id, err)
	}
	return updated.ToEntity(), nil
}

func (r *FlightRepositoryGORM) Delete(ctx context.Context, id int64) (*entities.Flight, error) {
	var deleted gormModels.Flight
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&deleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFlightNotFound
			}
			return err
		}
		res := tx.Where("id = ?", id).Delete(&gormModels.Flight{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFlightNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to delete flight %d: %w", id, err)
	}
	return deleted.ToEntity(), nil
}
