package board

import "flight-tracker/flightboard/internal/models/entities"

type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewError
	ViewEmpty
	ViewList
)

func (v ViewKind) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	case ViewList:
		return "list"
	}
	return "unknown"
}

// State is everything the flight board renders. Values are replaced, never
// mutated in place, so a copy handed to a renderer stays consistent.
type State struct {
	Flights []entities.Flight
	Loaded  bool
	Loading bool
	LoadErr error

	ModalOpen     bool
	Editing       *entities.Flight
	Draft         Draft
	MutationErr   error
	PendingDelete *entities.Flight

	issuedSeq  uint64
	appliedSeq uint64
}

func NewState() State {
	return State{Draft: NewDraft()}
}

// View picks exactly one presentation. A failed latest load wins over any
// cached data so the user sees the error and can retry.
func (s State) View() ViewKind {
	switch {
	case s.LoadErr != nil:
		return ViewError
	case !s.Loaded:
		return ViewLoading
	case len(s.Flights) == 0:
		return ViewEmpty
	default:
		return ViewList
	}
}

type Action interface {
	isAction()
}

type (
	// LoadStarted marks poll Seq as issued.
	LoadStarted struct{ Seq uint64 }
	// LoadSucceeded applies the result of poll Seq unless a newer poll was already applied.
	LoadSucceeded struct {
		Seq     uint64
		Flights []entities.Flight
	}
	LoadFailed struct {
		Seq uint64
		Err error
	}
	OpenCreate        struct{}
	OpenEdit          struct{ Flight entities.Flight }
	SetDraft          struct{ Draft Draft }
	CloseModal        struct{}
	MutationSucceeded struct{}
	MutationFailed    struct{ Err error }
	RequestDelete     struct{ Flight entities.Flight }
	CancelDelete      struct{}
	// DeleteSucceeded leaves any open form alone.
	DeleteSucceeded   struct{}
)

func (LoadStarted) isAction()       {}
func (LoadSucceeded) isAction()     {}
func (LoadFailed) isAction()        {}
func (OpenCreate) isAction()        {}
func (OpenEdit) isAction()          {}
func (SetDraft) isAction()          {}
func (CloseModal) isAction()        {}
func (MutationSucceeded) isAction() {}
func (MutationFailed) isAction()    {}
func (RequestDelete) isAction()     {}
func (CancelDelete) isAction()      {}
func (DeleteSucceeded) isAction()   {}

// Reduce returns the state after applying a.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadStarted:
		if a.Seq > s.issuedSeq {
			s.issuedSeq = a.Seq
		}
		s.Loading = true

	case LoadSucceeded:
		if a.Seq <= s.appliedSeq {
			return s
		}
		s.appliedSeq = a.Seq
		s.Flights = a.Flights
		if s.Flights == nil {
			s.Flights = []entities.Flight{}
		}
		s.Loaded = true
		s.LoadErr = nil
		s.Loading = s.appliedSeq < s.issuedSeq

	case LoadFailed:
		if a.Seq <= s.appliedSeq {
			return s
		}
		s.appliedSeq = a.Seq
		s.LoadErr = a.Err
		s.Loading = s.appliedSeq < s.issuedSeq

	case OpenCreate:
		s.ModalOpen = true
		s.Editing = nil
		s.Draft = NewDraft()
		s.MutationErr = nil

	case OpenEdit:
		f := a.Flight
		s.ModalOpen = true
		s.Editing = &f
		s.Draft = DraftFromFlight(f)
		s.MutationErr = nil

	case SetDraft:
		s.Draft = a.Draft
		s.MutationErr = nil

	case CloseModal:
		s.ModalOpen = false
		s.Editing = nil
		s.Draft = NewDraft()
		s.MutationErr = nil

	case MutationSucceeded:
		s.ModalOpen = false
		s.Editing = nil
		s.Draft = NewDraft()
		s.MutationErr = nil

	case MutationFailed:
		s.MutationErr = a.Err

	case RequestDelete:
		f := a.Flight
		s.PendingDelete = &f

	case CancelDelete, DeleteSucceeded:
		s.PendingDelete = nil
	}
	return s
}
