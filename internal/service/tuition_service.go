package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ignite/tuition-service/internal/client"
	"github.com/ignite/tuition-service/internal/model"
	"github.com/ignite/tuition-service/internal/repository"
	"github.com/rs/zerolog"
)

// TuitionStore persists tuition records. Lookups of a missing id fail with
// repository.ErrNotFound; inserts violating the unique name index fail with
// repository.ErrDuplicate.
//
// GetByID may be served from a cache. GetByIDFresh always reads the
// current record and is used before every change that depends on the
// tuition still existing.
type TuitionStore interface {
	Create(ctx context.Context, t *model.Tuition) error
	GetByID(ctx context.Context, id string) (*model.Tuition, error)
	GetByIDFresh(ctx context.Context, id string) (*model.Tuition, error)
	List(ctx context.Context) ([]model.Tuition, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// StudentClient is the subset of the student service this service calls.
type StudentClient interface {
	GetStudent(ctx context.Context, studentID, token string) (*model.Student, error)
	SetTuition(ctx context.Context, studentID string, tuitionID *string, token string) (*model.Student, error)
	RemoveTuition(ctx context.Context, tuitionID, token string) error
}

// PaymentClient is the subset of the payment service this service calls.
type PaymentClient interface {
	DeleteByTuition(ctx context.Context, tuitionID, token string) error
}

// TuitionService owns tuition records and sequences every change that must
// also be reflected in the student and payment services.
//
// Operations run as a single synchronous pass. A failing step stops the
// operation and is returned as *Error; earlier remote steps are not undone.
// Concurrent enrollment changes for the same student are not serialized
// here: the fetch and the update are two separate student service calls.
type TuitionService struct {
	store    TuitionStore
	students StudentClient
	payments PaymentClient
	log      zerolog.Logger
}

// NewTuitionService creates a new TuitionService.
func NewTuitionService(store TuitionStore, students StudentClient, payments PaymentClient, log zerolog.Logger) *TuitionService {
	return &TuitionService{
		store:    store,
		students: students,
		payments: payments,
		log:      log.With().Str("component", "tuition_service").Logger(),
	}
}

// Create validates and stores a new tuition. No remote service is called.
func (s *TuitionService) Create(ctx context.Context, t *model.Tuition) (*model.Tuition, error) {
	const op = "create tuition"

	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, validationError(op, "name is required")
	}

	// Check-then-insert is not atomic; the unique index catches the loser of a race.
	exists, err := s.store.ExistsByName(ctx, t.Name)
	if err != nil {
		return nil, internalError(op, err)
	}
	if exists {
		return nil, alreadyExistsError(op, t.Name)
	}

	if err := s.store.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, alreadyExistsError(op, t.Name)
		}
		return nil, internalError(op, err)
	}

	s.log.Info().Str("tuition_id", t.ID).Str("name", t.Name).Msg("Tuition created")
	return t, nil
}

// GetByID returns the tuition with the given id.
func (s *TuitionService) GetByID(ctx context.Context, id string) (*model.Tuition, error) {
	t, err := s.store.GetByID(ctx, id)
	return found(t, err, "get tuition", id)
}

// List returns every tuition in insertion order, never nil.
func (s *TuitionService) List(ctx context.Context) ([]model.Tuition, error) {
	tuitions, err := s.store.List(ctx)
	if err != nil {
		return nil, internalError("list tuitions", err)
	}
	if tuitions == nil {
		tuitions = []model.Tuition{}
	}
	return tuitions, nil
}

// Delete removes a tuition and everything referencing it in other services.
//
// Remote references are cleared before the local record is removed, so a
// failure at any step leaves the tuition in place and the whole call can be
// repeated. Each step is idempotent: clearing a tuition with no students or
// deleting payments that are already gone succeeds. A payment failure after
// the student step succeeded is reported, not rolled back.
func (s *TuitionService) Delete(ctx context.Context, id, token string) error {
	const op = "delete tuition"

	t, err := s.resolve(ctx, op, id)
	if err != nil {
		return err
	}

	if err := s.students.RemoveTuition(ctx, t.ID, token); err != nil {
		return upstreamError(op, UpstreamStudent, err)
	}

	if err := s.payments.DeleteByTuition(ctx, t.ID, token); err != nil {
		s.log.Warn().Str("tuition_id", t.ID).Msg("Students cleared but payment deletion failed; tuition kept for retry")
		return upstreamError(op, UpstreamPayment, err)
	}

	if err := s.store.Delete(ctx, t.ID); err != nil {
		return internalError(op, err)
	}

	s.log.Info().Str("tuition_id", t.ID).Msg("Tuition deleted")
	return nil
}

// AddStudent enrolls a student who is not enrolled anywhere into the tuition.
// The returned projection comes from the student service.
// Concurrent calls for the same student can both pass the enrollment check;
// the student service keeps the last write.
func (s *TuitionService) AddStudent(ctx context.Context, studentID, tuitionID, token string) (*model.Student, error) {
	const op = "add student to tuition"

	student, err := s.students.GetStudent(ctx, studentID, token)
	if err != nil {
		return nil, upstreamError(op, UpstreamStudent, err)
	}

	if student.Enrolled() {
		return nil, conflictError(op, ReasonAlreadyEnrolled,
			fmt.Errorf("student %q already enrolled in tuition %q", studentID, *student.TuitionID))
	}

	t, err := s.resolve(ctx, op, tuitionID)
	if err != nil {
		return nil, err
	}

	updated, err := s.students.SetTuition(ctx, studentID, &t.ID, token)
	if err != nil {
		return nil, upstreamError(op, UpstreamStudent, err)
	}

	s.log.Info().Str("student_id", studentID).Str("tuition_id", t.ID).Msg("Student added to tuition")
	return updated, nil
}

// RemoveStudent clears the student's enrollment, which must be exactly this
// tuition. Payments are left untouched; only Delete removes them.
func (s *TuitionService) RemoveStudent(ctx context.Context, studentID, tuitionID, token string) (*model.Student, error) {
	const op = "remove student from tuition"

	student, err := s.students.GetStudent(ctx, studentID, token)
	if err != nil {
		return nil, upstreamError(op, UpstreamStudent, err)
	}

	t, err := s.resolve(ctx, op, tuitionID)
	if err != nil {
		return nil, err
	}

	if !student.EnrolledIn(t.ID) {
		return nil, conflictError(op, ReasonNotEnrolled,
			fmt.Errorf("student %q not enrolled in tuition %q", studentID, t.ID))
	}

	updated, err := s.students.SetTuition(ctx, studentID, nil, token)
	if err != nil {
		return nil, upstreamError(op, UpstreamStudent, err)
	}

	s.log.Info().Str("student_id", studentID).Str("tuition_id", t.ID).Msg("Student removed from tuition")
	return updated, nil
}

// resolve reads the tuition a change applies to, bypassing any cache.
func (s *TuitionService) resolve(ctx context.Context, op, id string) (*model.Tuition, error) {
	t, err := s.store.GetByIDFresh(ctx, id)
	return found(t, err, op, id)
}

func found(t *model.Tuition, err error, op, id string) (*model.Tuition, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(op, id)
		}
		return nil, internalError(op, err)
	}
	return t, nil
}

// upstreamError classifies a failed client call. A 2xx answer that could not
// be decoded is our fault, not the upstream's, and is reported as internal.
func upstreamError(op string, svc Upstream, err error) *Error {
	if errors.Is(err, client.ErrMalformedResponse) {
		return internalError(op, err)
	}

	e := &Error{Kind: KindUpstream, Service: svc, Op: op, Err: err, Timeout: client.IsTimeout(err)}
	var re *client.ResponseError
	if errors.As(err, &re) {
		e.Body = re.Body
	}
	return e
}
