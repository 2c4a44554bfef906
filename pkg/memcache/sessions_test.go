package mem

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestSessions(ttl time.Duration) (*Sessions[int], *clock) {
	c := &clock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	s := NewSessions[int](ttl)
	s.now = c.now
	return s, c
}

func TestSessions_ExpireAfterTTL(t *testing.T) {
	s, c := newTestSessions(time.Minute)
	s.Put("a", 1)

	c.t = c.t.Add(30 * time.Second)
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("expected live session, got %v %v", v, ok)
	}

	// Get slid the expiry, so 59s later it is still alive.
	c.t = c.t.Add(59 * time.Second)
	if _, ok := s.Get("a"); !ok {
		t.Fatalf("expected sliding expiry")
	}

	c.t = c.t.Add(2 * time.Minute)
	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected expired session")
	}
}

func TestSessions_UpdateKeepsValueOnError(t *testing.T) {
	s, _ := newTestSessions(time.Minute)
	s.Put("a", 1)

	boom := errors.New("boom")
	got, ok, err := s.Update("a", func(v int) (int, error) { return v + 10, boom })
	if !ok || !errors.Is(err, boom) || got != 1 {
		t.Fatalf("unexpected result %v %v %v", got, ok, err)
	}
	if v, _ := s.Get("a"); v != 1 {
		t.Fatalf("failed update must not apply, got %d", v)
	}

	if _, ok, _ := s.Update("missing", func(v int) (int, error) { return v, nil }); ok {
		t.Fatalf("expected missing session")
	}
}

func TestSessions_UpdatesAreSerialized(t *testing.T) {
	s, _ := newTestSessions(time.Minute)
	s.Put("a", 0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("a", func(v int) (int, error) { return v + 1, nil })
		}()
	}
	wg.Wait()

	if v, _ := s.Get("a"); v != 100 {
		t.Fatalf("expected 100, got %d", v)
	}
}

func TestSessions_Sweep(t *testing.T) {
	s, c := newTestSessions(time.Minute)
	s.Put("a", 1)
	s.Put("b", 2)
	c.t = c.t.Add(2 * time.Minute)
	s.Put("c", 3)

	if n := s.Sweep(); n != 2 {
		t.Fatalf("expected 2 swept, got %d", n)
	}
	if _, ok := s.Get("c"); !ok {
		t.Fatalf("fresh session swept")
	}
}
