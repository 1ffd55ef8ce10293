package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/expedicao-api/internal/domain/repository"
)

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// MemorySessionRepository keeps sessions in memory and evicts the ones not
// used for longer than the TTL
type MemorySessionRepository[T any] struct {
	sessions    map[uuid.UUID]*sessionEntry[T]
	mu          sync.RWMutex
	ttl         time.Duration
	cleanupTick time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

var _ repository.SessionRepository[int] = (*MemorySessionRepository[int])(nil)

// NewMemorySessionRepository creates a session store. When cleanupInterval is
// positive a background goroutine evicts idle sessions until Close is called.
func NewMemorySessionRepository[T any](ttl, cleanupInterval time.Duration) *MemorySessionRepository[T] {
	r := &MemorySessionRepository[T]{
		sessions:    make(map[uuid.UUID]*sessionEntry[T]),
		ttl:         ttl,
		cleanupTick: cleanupInterval,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go r.cleanupLoop()
	}
	return r
}

// Get retrieves the session value and refreshes its last access time
func (r *MemorySessionRepository[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok || r.expired(entry) {
		var zero T
		return zero, false
	}
	entry.lastSeen = r.now()
	return entry.value, true
}

// Save stores value under id
func (r *MemorySessionRepository[T]) Save(id uuid.UUID, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &sessionEntry[T]{value: value, lastSeen: r.now()}
}

// Delete removes a session
func (r *MemorySessionRepository[T]) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of sessions that have not expired
func (r *MemorySessionRepository[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, entry := range r.sessions {
		if !r.expired(entry) {
			n++
		}
	}
	return n
}

// Close stops the cleanup goroutine
func (r *MemorySessionRepository[T]) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *MemorySessionRepository[T]) expired(entry *sessionEntry[T]) bool {
	return r.ttl > 0 && r.now().Sub(entry.lastSeen) > r.ttl
}

// cleanupLoop periodically removes expired sessions
func (r *MemorySessionRepository[T]) cleanupLoop() {
	ticker := time.NewTicker(r.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

// cleanup removes entries that haven't been used recently
func (r *MemorySessionRepository[T]) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.sessions {
		if r.expired(entry) {
			delete(r.sessions, id)
		}
	}
}
