package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/example/eatery/internal/forms"
	"github.com/example/eatery/internal/models"
	"github.com/example/eatery/internal/wire"
)

// State is the lifecycle position of an edit session.
type State int

const (
	// Pristine is a fresh session with blank defaults and no entity loaded.
	Pristine State = iota
	// Hydrated means a stored entity seeded the display state.
	Hydrated
	// Editing means at least one field was mutated since hydration.
	Editing
	// Submitting means one validation+conversion pass is in flight.
	Submitting
	// Succeeded means the upstream service accepted the payload.
	Succeeded
	// Failed means local validation rejected the state; the field-error map
	// is attached and the caller corrects and resubmits.
	Failed
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Hydrated:
		return "hydrated"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrSubmitInFlight rejects a second submit while one is outstanding.
	ErrSubmitInFlight = errors.New("a submit is already in flight")
	// ErrSessionAbandoned reports that the session was abandoned or re-seeded
	// and the result of an operation was dropped instead of applied.
	ErrSessionAbandoned = errors.New("session abandoned")
)

// Saver pushes a canonical payload to the external data service. The session
// performs exactly one Save call per successful validation pass and never
// retries.
type Saver interface {
	Save(ctx context.Context, payload wire.Payload) (*models.Restaurant, error)
}

// Outcome is the effect descriptor returned by Submit: the saved entity on
// success, or the per-field error map when local validation failed. Transport
// failures come back through the error return instead, so the caller can
// present the two differently (inline messages vs. a global notification).
type Outcome struct {
	Restaurant  *models.Restaurant
	FieldErrors forms.FieldErrors
}

// Session owns the edit state of one restaurant profile. State is exclusive
// to the session; the only shared boundary is the Saver call, which is gated
// so at most one submit is ever in flight.
type Session struct {
	mu          sync.Mutex
	id          uuid.UUID
	state       State
	form        forms.RestaurantForm
	fieldErrors forms.FieldErrors
	generation  int
	abandoned   bool
}

// New returns a pristine session seeded with blank defaults.
func New() *Session {
	return &Session{
		id:   uuid.New(),
		form: forms.BlankRestaurantForm(),
	}
}

// ID identifies the session.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns a copy of the current display state.
func (s *Session) Form() forms.RestaurantForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// FieldErrors returns the error map from the last failed submit, if any.
func (s *Session) FieldErrors() forms.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldErrors
}

// Hydrate seeds the display state from a stored entity. Re-seeding bumps the
// session generation, so a submit that was in flight for the old state is
// dropped when it completes.
func (s *Session) Hydrate(r models.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = forms.DisplayRestaurant(r)
	s.fieldErrors = nil
	s.state = Hydrated
	s.generation++
}

// Edit applies a mutation to the display state and moves the session to
// Editing. Mutations during an in-flight submit are allowed; the submit works
// on its own snapshot.
func (s *Session) Edit(apply func(*forms.RestaurantForm)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.abandoned {
		return ErrSessionAbandoned
	}
	apply(&s.form)
	if s.state != Submitting {
		s.state = Editing
	}
	return nil
}

// Abandon closes the session. Any submit still in flight has its late
// response dropped rather than applied to stale state.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandoned = true
	s.generation++
}

// Submit snapshots the current display state, validates it, and on success
// converts and pushes the canonical payload through the Saver. Validation
// errors never reach the Saver; Saver errors are never reinterpreted as
// field errors. A second Submit while one is in flight returns
// ErrSubmitInFlight.
func (s *Session) Submit(ctx context.Context, saver Saver) (Outcome, error) {
	s.mu.Lock()
	if s.abandoned {
		s.mu.Unlock()
		return Outcome{}, ErrSessionAbandoned
	}
	if s.state == Submitting {
		s.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	snapshot := s.form.Clone()
	gen := s.generation
	s.state = Submitting
	s.mu.Unlock()

	validated, fieldErrs := forms.ValidateRestaurant(snapshot)
	if fieldErrs != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.abandoned || s.generation != gen {
			return Outcome{}, ErrSessionAbandoned
		}
		s.state = Failed
		s.fieldErrors = fieldErrs
		return Outcome{FieldErrors: fieldErrs}, nil
	}

	saved, err := saver.Save(ctx, validated.Payload())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.abandoned || s.generation != gen {
		return Outcome{}, ErrSessionAbandoned
	}
	if err != nil {
		// Transport failure: the display state is still good, so the caller
		// may correct nothing and simply resubmit.
		s.state = Editing
		return Outcome{}, fmt.Errorf("save restaurant: %w", err)
	}
	s.state = Succeeded
	s.fieldErrors = nil
	return Outcome{Restaurant: saved}, nil
}
