package mem

import (
	"sync"
	"time"
)

// SessionStore keeps values for a limited time, keyed by id. Every read or
// write slides the expiry forward.
type SessionStore[T any] interface {
	Put(id string, value T)

	// Get returns the value for id if it has not expired.
	Get(id string) (T, bool)

	// Update runs fn on the current value under the store lock and keeps the
	// result only when fn returns nil, so a failed update leaves the value as
	// it was.
	Update(id string, fn func(T) (T, error)) (T, bool, error)

	Delete(id string)
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

type Sessions[T any] struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]entry[T]
}

func NewSessions[T any](ttl time.Duration) *Sessions[T] {
	return &Sessions[T]{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]entry[T]),
	}
}

func (s *Sessions[T]) Put(id string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = entry[T]{value: value, expiresAt: s.now().Add(s.ttl)}
}

func (s *Sessions[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(id)
}

func (s *Sessions[T]) Update(id string, fn func(T) (T, error)) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.touch(id)
	if !ok {
		return cur, false, nil
	}
	next, err := fn(cur)
	if err != nil {
		return cur, true, err
	}
	s.data[id] = entry[T]{value: next, expiresAt: s.now().Add(s.ttl)}
	return next, true, nil
}

func (s *Sessions[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

// Sweep drops every expired session and reports how many went.
func (s *Sessions[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			n++
		}
	}
	return n
}

// caller holds s.mu
func (s *Sessions[T]) touch(id string) (T, bool) {
	var zero T
	e, ok := s.data[id]
	if !ok {
		return zero, false
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return zero, false
	}
	e.expiresAt = now.Add(s.ttl)
	s.data[id] = e
	return e.value, true
}
