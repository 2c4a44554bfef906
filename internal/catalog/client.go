package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"itinera/internal/itinerary"
	"itinera/pkg/utils"
)

// Experience is one bookable activity as listed by the catalog.
type Experience struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Location          string   `json:"location"`
	Price             float64  `json:"price"`
	PriceUnit         string   `json:"priceUnit"`
	PriceEstimateText string   `json:"priceEstimate"`
	Images            []string `json:"images"`
}

type BrowseQuery struct {
	City     string
	Search   string
	Page     int
	PageSize int
}

type Client interface {
	// FetchAvailability returns the weekly availability of one experience.
	// A missing or malformed body yields an empty catalog, not an error;
	// transport failures return ErrAvailabilityUnavailable.
	FetchAvailability(ctx context.Context, experienceID string) ([]itinerary.AvailabilityDay, error)
	BrowseExperiences(ctx context.Context, q BrowseQuery) ([]Experience, error)
}

type HTTPClient struct {
	HTTP    *http.Client
	BaseURL string
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Limiter: limiter,
		Logger:  logger,
	}
}

type availabilityEnvelope struct {
	Availability []itinerary.AvailabilityDay `json:"availability"`
}

func (c *HTTPClient) FetchAvailability(ctx context.Context, experienceID string) ([]itinerary.AvailabilityDay, error) {
	u := fmt.Sprintf("%s/experiences/%s/availability", c.BaseURL, url.PathEscape(experienceID))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrAvailabilityUnavailable, err)
	}
	if status == http.StatusNotFound {
		return []itinerary.AvailabilityDay{}, nil
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("%w: catalog status %d", utils.ErrAvailabilityUnavailable, status)
	}

	var env availabilityEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.Logger.Warn("malformed availability payload",
			zap.String("experience_id", experienceID), zap.Error(err))
		return []itinerary.AvailabilityDay{}, nil
	}
	if env.Availability == nil {
		return []itinerary.AvailabilityDay{}, nil
	}
	return env.Availability, nil
}

func (c *HTTPClient) BrowseExperiences(ctx context.Context, q BrowseQuery) ([]Experience, error) {
	params := url.Values{}
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	u := c.BaseURL + "/experiences"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrCatalogUnavailable, err)
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("%w: catalog status %d", utils.ErrCatalogUnavailable, status)
	}

	var payload struct {
		Experiences []Experience `json:"experiences"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrCatalogUnavailable, err)
	}
	if payload.Experiences == nil {
		return []Experience{}, nil
	}
	return payload.Experiences, nil
}

func (c *HTTPClient) get(ctx context.Context, u string) ([]byte, int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
