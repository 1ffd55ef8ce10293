package repository

import (
	"github.com/google/uuid"
)

// SessionRepository holds the form state of each operator session. Values are
// opaque to the store; the form service decides what a session contains.
type SessionRepository[T any] interface {
	// Get retrieves the session value and refreshes its last access time
	Get(id uuid.UUID) (T, bool)

	// Save stores value under id
	Save(id uuid.UUID, value T)

	// Delete removes a session
	Delete(id uuid.UUID)

	// Count returns the number of live sessions
	Count() int
}
