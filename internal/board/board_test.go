package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"
)

// Mock flight API
type mockAPI struct {
	mu         sync.Mutex
	listFunc   func(ctx context.Context) ([]entities.Flight, error)
	createFunc func(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error)
	updateFunc func(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error)
	deleteFunc func(ctx context.Context, id int64) (*entities.Flight, error)
	lists      int
	deletes    int
}

func (m *mockAPI) ListFlights(ctx context.Context) ([]entities.Flight, error) {
	m.mu.Lock()
	m.lists++
	m.mu.Unlock()
	return m.listFunc(ctx)
}

func (m *mockAPI) CreateFlight(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error) {
	return m.createFunc(ctx, in)
}

func (m *mockAPI) UpdateFlight(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error) {
	return m.updateFunc(ctx, id, in)
}

func (m *mockAPI) DeleteFlight(ctx context.Context, id int64) (*entities.Flight, error) {
	m.mu.Lock()
	m.deletes++
	m.mu.Unlock()
	return m.deleteFunc(ctx, id)
}

func (m *mockAPI) listCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

func staticList(f ...entities.Flight) func(context.Context) ([]entities.Flight, error) {
	return func(context.Context) ([]entities.Flight, error) { return f, nil }
}

func TestBoard_RefreshAndOnChange(t *testing.T) {
	api := &mockAPI{listFunc: staticList(entities.Flight{ID: 1})}
	b := New(api)

	var views []ViewKind
	b.OnChange(func(s State) { views = append(views, s.View()) })

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := b.State().View(); got != ViewList {
		t.Errorf("Expected list view, got %s", got)
	}
	if len(views) != 2 || views[0] != ViewLoading || views[1] != ViewList {
		t.Errorf("Expected loading then list notifications, got %v", views)
	}
}

func TestBoard_RefreshErrorShowsErrorView(t *testing.T) {
	api := &mockAPI{listFunc: func(context.Context) ([]entities.Flight, error) {
		return nil, errors.New("HTTP 500: Internal Server Error")
	}}
	b := New(api)

	if err := b.Refresh(context.Background()); err == nil {
		t.Fatal("Expected error")
	}
	s := b.State()
	if s.View() != ViewError || s.LoadErr == nil {
		t.Errorf("Expected error view, got %s", s.View())
	}
}

func TestBoard_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	api := &mockAPI{listFunc: func(ctx context.Context) ([]entities.Flight, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return []entities.Flight{{ID: 1}}, nil
		}
		return []entities.Flight{{ID: 1}, {ID: 2}}, nil
	}}
	b := New(api)

	done := make(chan struct{})
	go func() {
		_ = b.Refresh(context.Background())
		close(done)
	}()

	// The slow poll must be issued before the fast one.
	<-started
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	close(release)
	<-done

	if got := len(b.State().Flights); got != 2 {
		t.Errorf("Expected newer response to win, got %d flights", got)
	}
}

func TestBoard_SubmitCreate(t *testing.T) {
	var got *dtos.NewFlightInput
	api := &mockAPI{
		listFunc: staticList(entities.Flight{ID: 5, FlightNumber: "AA100"}),
		createFunc: func(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error) {
			got = in
			return &entities.Flight{ID: 5, FlightNumber: in.FlightNumber}, nil
		},
	}
	b := New(api)

	b.OpenCreate()
	d := b.State().Draft
	d.FlightNumber = "AA100"
	d.Airline = "American"
	b.SetDraft(d)

	flight, err := b.Submit(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if flight.ID != 5 || got == nil || got.Status != entities.FlightStatusScheduled {
		t.Errorf("Unexpected create: %+v / %+v", flight, got)
	}

	s := b.State()
	if s.ModalOpen || s.Draft.FlightNumber != "" {
		t.Error("Expected modal closed and draft reset")
	}
	if api.listCount() != 1 || len(s.Flights) != 1 {
		t.Errorf("Expected refetch after create, got %d lists", api.listCount())
	}
}

func TestBoard_SubmitUpdateSendsChangedFields(t *testing.T) {
	orig := entities.Flight{ID: 8, FlightNumber: "DL8", Status: entities.FlightStatusScheduled}
	var gotID int64
	var gotIn *dtos.FlightUpdateInput
	api := &mockAPI{
		listFunc: staticList(orig),
		updateFunc: func(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error) {
			gotID, gotIn = id, in
			updated := orig
			updated.Status = *in.Status
			return &updated, nil
		},
	}
	b := New(api)

	b.OpenEdit(orig)
	d := b.State().Draft
	d.Status = entities.FlightStatusDelayed
	b.SetDraft(d)

	if _, err := b.Submit(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotID != 8 || gotIn.Status == nil || gotIn.FlightNumber != nil {
		t.Errorf("Expected status-only update of 8, got %d %+v", gotID, gotIn)
	}
}

func TestBoard_SubmitFailureKeepsModal(t *testing.T) {
	api := &mockAPI{
		listFunc: staticList(),
		createFunc: func(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error) {
			return nil, errors.New("airline is required")
		},
	}
	b := New(api)

	if _, err := b.Submit(context.Background()); !errors.Is(err, ErrModalClosed) {
		t.Errorf("Expected ErrModalClosed without an open form, got %v", err)
	}

	b.OpenCreate()
	if _, err := b.Submit(context.Background()); err == nil {
		t.Fatal("Expected create error")
	}
	s := b.State()
	if !s.ModalOpen || s.MutationErr == nil {
		t.Error("Expected modal open with error")
	}
	if api.listCount() != 0 {
		t.Error("Expected no refetch after failed create")
	}
}

func TestBoard_DeleteRequiresConfirmation(t *testing.T) {
	api := &mockAPI{
		listFunc: staticList(),
		deleteFunc: func(ctx context.Context, id int64) (*entities.Flight, error) {
			return &entities.Flight{ID: id}, nil
		},
	}
	b := New(api)
	flight := entities.Flight{ID: 4}

	deleted, err := b.Delete(context.Background(), flight, func(entities.Flight) bool { return false })
	if err != nil || deleted {
		t.Errorf("Expected declined delete, got %v %v", deleted, err)
	}
	if api.deletes != 0 {
		t.Fatal("Expected no API call when declined")
	}
	if b.State().PendingDelete != nil {
		t.Error("Expected pending delete cleared after decline")
	}

	if deleted, _ := b.Delete(context.Background(), flight, nil); deleted || api.deletes != 0 {
		t.Error("Expected nil confirm to decline")
	}

	var asked entities.Flight
	deleted, err = b.Delete(context.Background(), flight, func(f entities.Flight) bool {
		asked = f
		return true
	})
	if err != nil || !deleted {
		t.Fatalf("Expected delete, got %v %v", deleted, err)
	}
	if asked.ID != 4 || api.deletes != 1 {
		t.Errorf("Expected confirmation for flight 4 and one delete, got %d / %d", asked.ID, api.deletes)
	}
	if api.listCount() != 1 {
		t.Errorf("Expected refetch after delete, got %d", api.listCount())
	}
}

func TestBoard_DeleteLeavesEditInProgress(t *testing.T) {
	api := &mockAPI{
		listFunc: staticList(),
		deleteFunc: func(ctx context.Context, id int64) (*entities.Flight, error) {
			return &entities.Flight{ID: id}, nil
		},
	}
	b := New(api)
	b.OpenEdit(entities.Flight{ID: 1, FlightNumber: "AA100"})

	yes := func(entities.Flight) bool { return true }
	if _, err := b.Delete(context.Background(), entities.Flight{ID: 2}, yes); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	s := b.State()
	if !s.ModalOpen || s.Editing == nil || s.Editing.ID != 1 {
		t.Errorf("Expected edit form to stay open, got %+v", s)
	}
}

func TestBoard_RunPollsUntilCancelled(t *testing.T) {
	api := &mockAPI{listFunc: staticList()}
	b := New(api, WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- b.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for api.listCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if api.listCount() < 3 {
		t.Errorf("Expected repeated polling, got %d", api.listCount())
	}
}
