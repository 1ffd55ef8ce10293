package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/expedicao-api/internal/domain/repository"
)

// FormService hands out one FormController per operator session
type FormService struct {
	sessions  repository.SessionRepository[*FormController]
	orderRepo repository.ExpedicaoRepository
	validator OrderValidator
	now       func() time.Time
}

// NewFormService creates a new form service
func NewFormService(
	sessions repository.SessionRepository[*FormController],
	orderRepo repository.ExpedicaoRepository,
	validator OrderValidator,
	now func() time.Time,
) *FormService {
	if now == nil {
		now = time.Now
	}
	return &FormService{
		sessions:  sessions,
		orderRepo: orderRepo,
		validator: validator,
		now:       now,
	}
}

// NewController creates a controller that is not tied to any session
func (s *FormService) NewController() *FormController {
	return NewFormController(s.orderRepo, s.validator, s.now)
}

// Open starts a new session with a fresh order
func (s *FormService) Open() (uuid.UUID, *FormController) {
	id := uuid.New()
	fc := s.NewController()
	s.sessions.Save(id, fc)
	return id, fc
}

// Get returns the controller of an existing session
func (s *FormService) Get(id uuid.UUID) (*FormController, bool) {
	if id == uuid.Nil {
		return nil, false
	}
	return s.sessions.Get(id)
}

// GetOrOpen returns the controller for id, opening a new session when id is
// unknown or expired. The returned id is the one the caller must keep using.
func (s *FormService) GetOrOpen(id uuid.UUID) (uuid.UUID, *FormController) {
	if fc, ok := s.Get(id); ok {
		return id, fc
	}
	return s.Open()
}

// Close drops a session and its order
func (s *FormService) Close(id uuid.UUID) {
	s.sessions.Delete(id)
}

// ActiveSessions returns the number of live sessions
func (s *FormService) ActiveSessions() int {
	return s.sessions.Count()
}
