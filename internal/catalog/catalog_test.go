package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"itinera/internal/itinerary"
	"itinera/pkg/utils"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second, rate.NewLimiter(rate.Inf, 1), zap.NewNop())
}

func TestFetchAvailability_Decodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/experiences/42/availability" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"availability":[{"dayOfWeek":"Friday","timeSlots":[{"startTime":"09:00:00","endTime":"10:00:00"}]}]}`))
	})

	days, err := c.FetchAvailability(context.Background(), "42")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(days) != 1 || days[0].DayOfWeek != "Friday" || len(days[0].TimeSlots) != 1 {
		t.Fatalf("unexpected payload %+v", days)
	}
}

func TestFetchAvailability_MalformedOrMissingIsEmpty(t *testing.T) {
	bodies := []string{`not json`, `{}`, `{"availability":null}`}
	for _, body := range bodies {
		body := body
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		days, err := c.FetchAvailability(context.Background(), "1")
		if err != nil {
			t.Fatalf("%q: unexpected error %v", body, err)
		}
		if days == nil || len(days) != 0 {
			t.Fatalf("%q: expected empty non-nil catalog, got %+v", body, days)
		}
	}
}

func TestFetchAvailability_ServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.FetchAvailability(context.Background(), "1")
	if !errors.Is(err, utils.ErrAvailabilityUnavailable) {
		t.Fatalf("expected ErrAvailabilityUnavailable, got %v", err)
	}
}

func TestBrowseExperiences(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "El Nido" {
			t.Errorf("expected city query, got %q", got)
		}
		w.Write([]byte(`{"experiences":[{"id":"7","name":"Kayak","price":0,"priceEstimate":"₱800-1,200","priceUnit":"per person","images":["k.jpg"]}]}`))
	})

	list, err := c.BrowseExperiences(context.Background(), BrowseQuery{City: "El Nido", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(list) != 1 || list[0].PriceEstimateText != "₱800-1,200" {
		t.Fatalf("unexpected list %+v", list)
	}
}

type countingClient struct {
	calls   int32
	release chan struct{}
	fail    bool
}

func (c *countingClient) FetchAvailability(ctx context.Context, id string) ([]itinerary.AvailabilityDay, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.release != nil {
		<-c.release
	}
	if c.fail {
		return nil, utils.ErrAvailabilityUnavailable
	}
	return []itinerary.AvailabilityDay{{DayOfWeek: "Monday"}}, nil
}

func (c *countingClient) BrowseExperiences(ctx context.Context, q BrowseQuery) ([]Experience, error) {
	return nil, nil
}

func TestAvailabilityLoader_SingleFetchPerExperience(t *testing.T) {
	fake := &countingClient{release: make(chan struct{})}
	l := NewAvailabilityLoader(fake, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background(), "7"); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(fake.release)
	wg.Wait()

	if _, err := l.Load(context.Background(), "7"); err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if got := atomic.LoadInt32(&fake.calls); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
}

func TestAvailabilityLoader_FailuresAreNotCached(t *testing.T) {
	fake := &countingClient{fail: true}
	l := NewAvailabilityLoader(fake, time.Second)

	if _, err := l.Load(context.Background(), "7"); !errors.Is(err, utils.ErrAvailabilityUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if _, ok := l.Cached("7"); ok {
		t.Fatalf("failure must not be cached")
	}

	fake.fail = false
	days, err := l.Load(context.Background(), "7")
	if err != nil || len(days) != 1 {
		t.Fatalf("retry: %v %+v", err, days)
	}
	if got := atomic.LoadInt32(&fake.calls); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

func TestAvailabilityLoader_AbandonedCallStillFillsCache(t *testing.T) {
	fake := &countingClient{release: make(chan struct{})}
	l := NewAvailabilityLoader(fake, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx, "7")
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(fake.release)
	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := l.Cached("7"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("result never landed in cache")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWithRedisCache_NilClientPassesThrough(t *testing.T) {
	fake := &countingClient{}
	if got := WithRedisCache(fake, nil, time.Minute, zap.NewNop()); got != Client(fake) {
		t.Fatalf("expected passthrough client")
	}
}
