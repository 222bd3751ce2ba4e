package services

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"flight-tracker/flightboard/internal/common"
	"flight-tracker/flightboard/internal/constants"
	"flight-tracker/flightboard/internal/db"
	"flight-tracker/flightboard/internal/db/repositories"
	"flight-tracker/flightboard/internal/events"
	"flight-tracker/flightboard/internal/logging"
	"flight-tracker/flightboard/internal/metrics"
	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/go-playground/validator/v10"
)

// FlightsService sits between the HTTP handlers and the flight store. It
// validates input, stamps timestamps, keeps the list cache coherent and
// publishes change events.
type FlightsService struct {
	store     repositories.FlightStore
	cache     common.CacheInterface
	cacheTTL  time.Duration
	publisher events.Publisher
	metrics   *metrics.MetricsRegistry
	validate  *validator.Validate

	// listGen counts list invalidations; listDirty holds the generation of
	// the last invalidation whose cache delete failed, or 0.
	listGen   atomic.Uint64
	listDirty atomic.Uint64
}

// NewFlightsService wires the service. cache, publisher and m may be nil.
func NewFlightsService(
	store repositories.FlightStore,
	cache common.CacheInterface,
	cacheTTL time.Duration,
	publisher events.Publisher,
	m *metrics.MetricsRegistry,
) *FlightsService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &FlightsService{
		store:     store,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		metrics:   m,
		validate:  newValidator(),
	}
}

// List serves the flight list from the cache when it is known to be
// current. A load that overlaps a mutation is returned but not cached.
func (svc *FlightsService) List(ctx context.Context) ([]entities.Flight, error) {
	if !svc.listCacheEnabled() || !svc.listCacheClean() {
		return svc.listFromStore(ctx)
	}

	var (
		loaded []entities.Flight
		missed bool
	)
	gen := svc.listGen.Load()
	data, err := svc.cache.GetOrSet(constants.FlightListCacheKey, svc.cacheTTL, func() ([]byte, bool, error) {
		missed = true
		flights, err := svc.listFromStore(ctx)
		if err != nil {
			return nil, false, err
		}
		loaded = flights

		data, err := json.Marshal(flights)
		if err != nil {
			logging.Warn("Failed to encode flight list for cache", "error", err)
			return nil, false, nil
		}
		return data, svc.listGen.Load() == gen && svc.listDirty.Load() == 0, nil
	})
	if err != nil {
		return nil, err
	}

	if missed {
		svc.metrics.CacheMiss(string(constants.CachePrefixFlights))
		// a mutation that committed between the generation check and the
		// write may have been overwritten
		if svc.listGen.Load() != gen {
			svc.invalidateList()
		}
		return loaded, nil
	}

	var flights []entities.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		logging.Warn("Discarding unreadable cached flight list", "error", err)
		svc.invalidateList()
		return svc.listFromStore(ctx)
	}
	svc.metrics.CacheHit(string(constants.CachePrefixFlights))
	return flights, nil
}

func (svc *FlightsService) listFromStore(ctx context.Context) ([]entities.Flight, error) {
	start := time.Now()
	flights, err := svc.store.List(ctx)
	svc.metrics.ObserveQuery("list", start, err)
	return flights, err
}

func (svc *FlightsService) Get(ctx context.Context, id int64) (*entities.Flight, error) {
	start := time.Now()
	flight, err := svc.store.GetByID(ctx, id)
	svc.metrics.ObserveQuery("get", start, err)
	return flight, err
}

func (svc *FlightsService) Create(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error) {
	if err := svc.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	status := in.Status
	if status == "" {
		status = entities.FlightStatusScheduled
	}

	now := db.Now()
	flight := &entities.Flight{
		FlightNumber:  in.FlightNumber,
		Airline:       in.Airline,
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureTime: db.Normalize(in.DepartureTime),
		ArrivalTime:   db.Normalize(in.ArrivalTime),
		Status:        status,
		Gate:          in.Gate,
		Terminal:      in.Terminal,
		Aircraft:      in.Aircraft,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	start := time.Now()
	err := svc.store.Create(ctx, flight)
	svc.metrics.ObserveQuery("create", start, err)
	if err != nil {
		return nil, err
	}

	svc.afterMutation(ctx, constants.EventFlightCreated, *flight)
	return flight, nil
}

func (svc *FlightsService) Update(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error) {
	if in.IsEmpty() {
		return nil, &ValidationError{Message: constants.MsgEmptyUpdate}
	}
	if err := svc.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	if in.DepartureTime != nil {
		t := db.Normalize(*in.DepartureTime)
		in.DepartureTime = &t
	}
	if in.ArrivalTime != nil {
		t := db.Normalize(*in.ArrivalTime)
		in.ArrivalTime = &t
	}

	start := time.Now()
	flight, err := svc.store.Update(ctx, id, in, db.Now())
	svc.metrics.ObserveQuery("update", start, err)
	if err != nil {
		return nil, err
	}

	svc.afterMutation(ctx, constants.EventFlightUpdated, *flight)
	return flight, nil
}

func (svc *FlightsService) Delete(ctx context.Context, id int64) (*entities.Flight, error) {
	start := time.Now()
	flight, err := svc.store.Delete(ctx, id)
	svc.metrics.ObserveQuery("delete", start, err)
	if err != nil {
		return nil, err
	}

	svc.afterMutation(ctx, constants.EventFlightDeleted, *flight)
	return flight, nil
}

func (svc *FlightsService) afterMutation(ctx context.Context, eventType constants.EventType, flight entities.Flight) {
	svc.invalidateList()
	svc.metrics.FlightMutation(string(eventType))

	if err := svc.publisher.Publish(ctx, events.NewFlightEvent(eventType, flight)); err != nil {
		svc.metrics.EventPublishFailed()
		logging.Warn("Failed to publish flight event", "type", eventType, "flight_id", flight.ID, "error", err)
	}
}

func (svc *FlightsService) listCacheEnabled() bool {
	return svc.cache != nil && svc.cacheTTL > 0
}

// invalidateList bumps the list generation and drops the cached list. If the
// delete fails the cache is bypassed until a later delete succeeds.
func (svc *FlightsService) invalidateList() {
	gen := svc.listGen.Add(1)
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(constants.FlightListCacheKey); err != nil {
		svc.listDirty.Store(gen)
		logging.Warn("Failed to invalidate cached flight list", "error", err)
	}
}

// listCacheClean retries a failed invalidation and reports whether the
// cached list may be read.
func (svc *FlightsService) listCacheClean() bool {
	dirty := svc.listDirty.Load()
	if dirty == 0 {
		return true
	}
	if err := svc.cache.Delete(constants.FlightListCacheKey); err != nil {
		return false
	}
	svc.listDirty.CompareAndSwap(dirty, 0)
	return svc.listDirty.Load() == 0
}
