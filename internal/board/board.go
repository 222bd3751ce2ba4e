package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"flight-tracker/flightboard/internal/logging"
	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"
)

const DefaultPollInterval = 30 * time.Second

var ErrModalClosed = errors.New("no flight form is open")

// API is the subset of the HTTP client the board drives.
type API interface {
	ListFlights(ctx context.Context) ([]entities.Flight, error)
	CreateFlight(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error)
	UpdateFlight(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error)
	DeleteFlight(ctx context.Context, id int64) (*entities.Flight, error)
}

// Board owns the client-side flight list. Polling and user actions may run
// concurrently; every change goes through Reduce under one mutex.
type Board struct {
	api      API
	interval time.Duration

	mu        sync.Mutex
	state     State
	seq       uint64
	listeners []func(State)
}

type Option func(*Board)

func WithPollInterval(d time.Duration) Option {
	return func(b *Board) { b.interval = d }
}

func New(api API, opts ...Option) *Board {
	b := &Board{
		api:      api,
		interval: DefaultPollInterval,
		state:    NewState(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// OnChange registers fn to receive every new state. fn runs outside the lock.
func (b *Board) OnChange(fn func(State)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

func (b *Board) dispatch(a Action) State {
	b.mu.Lock()
	b.state = Reduce(b.state, a)
	s := b.state
	listeners := append([]func(State){}, b.listeners...)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
	return s
}

func (b *Board) nextSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// Refresh fetches the list once. The result is dropped if a newer fetch has
// already been applied.
func (b *Board) Refresh(ctx context.Context) error {
	seq := b.nextSeq()
	b.dispatch(LoadStarted{Seq: seq})

	flights, err := b.api.ListFlights(ctx)
	if err != nil {
		b.dispatch(LoadFailed{Seq: seq, Err: err})
		return err
	}
	b.dispatch(LoadSucceeded{Seq: seq, Flights: flights})
	return nil
}

// Run loads immediately and then every poll interval until ctx is done.
func (b *Board) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		if err := b.Refresh(ctx); err != nil && ctx.Err() == nil {
			logging.Debug("Flight list refresh failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (b *Board) OpenCreate() { b.dispatch(OpenCreate{}) }

func (b *Board) OpenEdit(f entities.Flight) { b.dispatch(OpenEdit{Flight: f}) }

func (b *Board) SetDraft(d Draft) { b.dispatch(SetDraft{Draft: d}) }

func (b *Board) CloseModal() { b.dispatch(CloseModal{}) }

// Submit creates a flight from the draft, or updates the flight being
// edited with the fields that changed. On success the modal closes and the
// list is refetched; a failed refetch shows up in State, not here.
func (b *Board) Submit(ctx context.Context) (*entities.Flight, error) {
	s := b.State()
	if !s.ModalOpen {
		return nil, ErrModalClosed
	}

	var (
		flight *entities.Flight
		err    error
	)
	if s.Editing == nil {
		flight, err = b.api.CreateFlight(ctx, s.Draft.NewFlightInput())
	} else {
		in := s.Draft.UpdateInput(*s.Editing)
		if in.IsEmpty() {
			b.dispatch(MutationSucceeded{})
			editing := *s.Editing
			return &editing, nil
		}
		flight, err = b.api.UpdateFlight(ctx, s.Editing.ID, in)
	}
	if err != nil {
		b.dispatch(MutationFailed{Err: err})
		return nil, err
	}

	b.dispatch(MutationSucceeded{})
	_ = b.Refresh(ctx)
	return flight, nil
}

// Delete asks confirm before deleting f. A nil confirm or a false answer
// cancels without calling the API and reports false.
func (b *Board) Delete(ctx context.Context, f entities.Flight, confirm func(entities.Flight) bool) (bool, error) {
	b.dispatch(RequestDelete{Flight: f})

	if confirm == nil || !confirm(f) {
		b.dispatch(CancelDelete{})
		return false, nil
	}

	if _, err := b.api.DeleteFlight(ctx, f.ID); err != nil {
		b.dispatch(MutationFailed{Err: err})
		b.dispatch(CancelDelete{})
		return false, err
	}

	b.dispatch(DeleteSucceeded{})
	_ = b.Refresh(ctx)
	return true, nil
}
