package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"flight-tracker/flightboard/internal/board"
	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

// fakeServer serves the flight API from memory.
type fakeServer struct {
	mu      sync.Mutex
	flights map[int64]entities.Flight
	nextID  int64
	updates []dtos.FlightUpdateInput
	deletes int
	lists   int
}

func (fs *fakeServer) listCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.lists
}

func newFakeServer(t *testing.T, seed ...entities.Flight) (*fakeServer, string) {
	t.Helper()
	fs := &fakeServer{flights: make(map[int64]entities.Flight), nextID: 1}
	for _, f := range seed {
		fs.flights[f.ID] = f
		if f.ID >= fs.nextID {
			fs.nextID = f.ID + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, entities.HealthResponse{Status: "ok", Timestamp: "2024-01-01T00:00:00Z", Environment: "development"})
	})
	mux.HandleFunc("GET /api/flights", func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.lists++
		out := []entities.Flight{}
		for _, f := range fs.flights {
			out = append(out, f)
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("POST /api/flights", func(w http.ResponseWriter, r *http.Request) {
		var in dtos.NewFlightInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid flight data", "message": err.Error()})
			return
		}
		fs.mu.Lock()
		defer fs.mu.Unlock()
		f := entities.Flight{
			ID: fs.nextID, FlightNumber: in.FlightNumber, Airline: in.Airline, Origin: in.Origin,
			Destination: in.Destination, DepartureTime: in.DepartureTime, ArrivalTime: in.ArrivalTime,
			Status: in.Status, Gate: in.Gate, Terminal: in.Terminal, Aircraft: in.Aircraft, Notes: in.Notes,
		}
		fs.nextID++
		fs.flights[f.ID] = f
		writeJSON(w, http.StatusCreated, f)
	})
	mux.HandleFunc("GET /api/flights/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		fs.mu.Lock()
		defer fs.mu.Unlock()
		f, ok := fs.flights[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found", "message": "Flight not found"})
			return
		}
		writeJSON(w, http.StatusOK, f)
	})
	mux.HandleFunc("PUT /api/flights/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var in dtos.FlightUpdateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid flight data"})
			return
		}
		fs.mu.Lock()
		defer fs.mu.Unlock()
		f, ok := fs.flights[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found", "message": "Flight not found"})
			return
		}
		fs.updates = append(fs.updates, in)
		if in.Status != nil {
			f.Status = *in.Status
		}
		if in.Gate.Set {
			f.Gate = in.Gate.Value
		}
		fs.flights[id] = f
		writeJSON(w, http.StatusOK, f)
	})
	mux.HandleFunc("DELETE /api/flights/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		fs.mu.Lock()
		defer fs.mu.Unlock()
		f, ok := fs.flights[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found", "message": "Flight not found"})
			return
		}
		delete(fs.flights, id)
		fs.deletes++
		writeJSON(w, http.StatusOK, map[string]any{"message": "Flight deleted successfully", "flight": f})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fs, server.URL
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func runCmd(t *testing.T, url, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", url}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func strPtr(s string) *string { return &s }

func sampleFlight() entities.Flight {
	return entities.Flight{
		ID:            1,
		FlightNumber:  "AA100",
		Airline:       "American Airlines",
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
		Status:        entities.FlightStatusScheduled,
		Gate:          strPtr("A1"),
	}
}

func TestHealthCmd(t *testing.T) {
	_, url := newFakeServer(t)

	out, err := runCmd(t, url, "", "health")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "ok (development)") {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestListCmd(t *testing.T) {
	_, url := newFakeServer(t, sampleFlight())

	out, err := runCmd(t, url, "", "list")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, want := range []string{"STATUS", "AA100", "JFK → LAX", "SCHEDULED", "A1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestListCmd_Empty(t *testing.T) {
	_, url := newFakeServer(t)

	out, err := runCmd(t, url, "", "list")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "No flights found") {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestGetCmd(t *testing.T) {
	_, url := newFakeServer(t, sampleFlight())

	out, err := runCmd(t, url, "", "get", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "AA100") || !strings.Contains(out, "American Airlines") {
		t.Errorf("Unexpected output: %q", out)
	}

	if _, err := runCmd(t, url, "", "get", "99"); err == nil || !strings.Contains(err.Error(), "Flight not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
	if _, err := runCmd(t, url, "", "get", "abc"); err == nil || !strings.Contains(err.Error(), "invalid flight id") {
		t.Errorf("Expected invalid id error, got %v", err)
	}
}

func TestCreateCmd(t *testing.T) {
	fs, url := newFakeServer(t)

	out, err := runCmd(t, url, "", "create",
		"--number", "BA1", "--airline", "British Airways",
		"--origin", "LHR", "--destination", "JFK",
		"--departure", "2024-01-02T09:00:00Z", "--arrival", "2024-01-02T17:00:00Z",
		"--gate", "B7",
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Created flight 1: BA1") {
		t.Errorf("Unexpected output: %q", out)
	}

	f := fs.flights[1]
	if f.Status != entities.FlightStatusScheduled {
		t.Errorf("Expected default status scheduled, got %s", f.Status)
	}
	if f.Gate == nil || *f.Gate != "B7" {
		t.Errorf("Expected gate B7, got %v", f.Gate)
	}
	if f.Terminal != nil {
		t.Errorf("Expected unset terminal to be omitted, got %v", *f.Terminal)
	}
	if fs.listCount() != 1 {
		t.Errorf("Expected the list to be refetched after create, got %d lists", fs.listCount())
	}
}

func TestCreateCmd_InvalidInput(t *testing.T) {
	_, url := newFakeServer(t)
	base := []string{"create", "--number", "BA1", "--airline", "BA", "--origin", "LHR", "--destination", "JFK"}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad time", append(base, "--departure", "tomorrow", "--arrival", "2024-01-02T17:00:00Z"), "invalid --departure"},
		{"bad status", append(base, "--departure", "2024-01-02T09:00:00Z", "--arrival", "2024-01-02T17:00:00Z", "--status", "landed"), "invalid status"},
		{"missing required", []string{"create", "--number", "BA1"}, "required flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, url, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateCmd_SendsOnlyChangedFlags(t *testing.T) {
	fs, url := newFakeServer(t, sampleFlight())

	out, err := runCmd(t, url, "", "update", "1", "--status", "BOARDING", "--gate", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Updated flight 1") {
		t.Errorf("Unexpected output: %q", out)
	}

	if len(fs.updates) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(fs.updates))
	}
	in := fs.updates[0]
	if in.Status == nil || *in.Status != entities.FlightStatusBoarding {
		t.Errorf("Expected status boarding, got %v", in.Status)
	}
	if !in.Gate.Set || in.Gate.Value != nil {
		t.Errorf("Expected emptied gate to be sent as null, got %+v", in.Gate)
	}
	if in.FlightNumber != nil || in.DepartureTime != nil || in.Notes.Set {
		t.Errorf("Expected untouched fields to be omitted, got %+v", in)
	}
	if fs.flights[1].Gate != nil {
		t.Errorf("Expected gate cleared, got %v", *fs.flights[1].Gate)
	}
	if fs.listCount() != 1 {
		t.Errorf("Expected the list to be refetched after update, got %d lists", fs.listCount())
	}
}

func TestUpdateCmd_UnchangedValuesSkipRequest(t *testing.T) {
	fs, url := newFakeServer(t, sampleFlight())

	out, err := runCmd(t, url, "", "update", "1", "--status", "scheduled", "--gate", "A1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "No changes to flight 1") {
		t.Errorf("Unexpected output: %q", out)
	}
	if len(fs.updates) != 0 || fs.listCount() != 0 {
		t.Errorf("Expected no update or refetch, got %d updates / %d lists", len(fs.updates), fs.listCount())
	}
}

func TestUpdateCmd_NothingToUpdate(t *testing.T) {
	fs, url := newFakeServer(t, sampleFlight())

	_, err := runCmd(t, url, "", "update", "1")
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("Expected nothing to update error, got %v", err)
	}
	if len(fs.updates) != 0 {
		t.Errorf("Expected no request, got %d", len(fs.updates))
	}
}

func TestDeleteCmd_Confirmation(t *testing.T) {
	fs, url := newFakeServer(t, sampleFlight())

	out, err := runCmd(t, url, "n\n", "delete", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Delete flight AA100 (JFK → LAX)?") || !strings.Contains(out, "Cancelled") {
		t.Errorf("Unexpected output: %q", out)
	}
	if fs.deletes != 0 {
		t.Fatalf("Expected declined delete to leave the flight, got %d deletes", fs.deletes)
	}

	out, err = runCmd(t, url, "yes\n", "delete", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Deleted flight 1: AA100") {
		t.Errorf("Unexpected output: %q", out)
	}
	if fs.deletes != 1 {
		t.Errorf("Expected 1 delete, got %d", fs.deletes)
	}
}

func TestDeleteCmd_SkipConfirm(t *testing.T) {
	fs, url := newFakeServer(t, sampleFlight())

	if _, err := runCmd(t, url, "", "delete", "1", "--yes"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fs.deletes != 1 {
		t.Errorf("Expected 1 delete, got %d", fs.deletes)
	}
}

func TestRenderBoard_Views(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state board.State
		want  string
	}{
		{"loading", board.State{Loading: true}, "Loading flights"},
		{"error", board.State{Loaded: true, LoadErr: context.DeadlineExceeded}, "Error Loading Flights"},
		{"empty", board.State{Loaded: true}, "No flights found"},
		{"list", board.State{Loaded: true, Flights: []entities.Flight{sampleFlight()}}, "AA100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderBoard(&buf, tt.state, now)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("Expected %q in output, got:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestStatusColor_PadsLabel(t *testing.T) {
	for _, s := range entities.FlightStatuses {
		if got := statusColor(s); len(got) != 9 {
			t.Errorf("Expected 9 wide label for %s, got %q", s, got)
		}
	}
}

func TestWatchCmd_RefreshAndQuitKeys(t *testing.T) {
	fs, url := newFakeServer(t, sampleFlight())

	stdin, keys := io.Pipe()
	defer keys.Close()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(stdin)
	cmd.SetArgs([]string{"--api-url", url, "watch", "--interval", "1h", "--no-clear"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(context.Background()) }()

	if _, err := io.WriteString(keys, "r\n"); err != nil {
		t.Fatalf("write key: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for fs.listCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected initial load plus manual refresh, got %d lists", fs.listCount())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := io.WriteString(keys, "q\n"); err != nil {
		t.Fatalf("write key: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit on q, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected watch to stop on q")
	}

	if !strings.Contains(out.String(), "AA100") {
		t.Errorf("Expected the board to be rendered, got:\n%s", out.String())
	}
}
