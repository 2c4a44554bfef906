package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"itinera/internal/itinerary"
	"itinera/pkg/utils"
)

type Preferences struct {
	ActivityTags      []string `json:"activity_tags,omitempty"`
	CompanionType     string   `json:"companion_type,omitempty"`
	TimeOfDay         string   `json:"time_of_day,omitempty"`
	BudgetTier        string   `json:"budget_tier,omitempty"`
	Intensity         string   `json:"intensity,omitempty"`
	DistanceTolerance string   `json:"distance_tolerance,omitempty"`
}

type Request struct {
	City        string      `json:"city"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	Travelers   int         `json:"travelers"`
	Preferences Preferences `json:"preferences"`
}

// GeneratedItem is one activity proposed by the generation service, carrying
// the same display fields the catalog would.
type GeneratedItem struct {
	ExperienceID      string   `json:"experience_id"`
	DayNumber         int      `json:"day_number"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	Name              string   `json:"name"`
	Location          string   `json:"location"`
	Price             float64  `json:"price"`
	PriceUnit         string   `json:"price_unit"`
	PriceEstimateText string   `json:"price_estimate"`
	Images            []string `json:"images"`
}

func (g GeneratedItem) ToItem(capturedAt time.Time) itinerary.Item {
	return itinerary.Item{
		ExperienceID: g.ExperienceID,
		DayNumber:    g.DayNumber,
		StartTime:    g.StartTime,
		EndTime:      g.EndTime,
		Snapshot: itinerary.ExperienceSnapshot{
			Name:              g.Name,
			Location:          g.Location,
			Price:             g.Price,
			PriceUnit:         g.PriceUnit,
			PriceEstimateText: g.PriceEstimateText,
			Images:            g.Images,
			CapturedAt:        capturedAt,
		},
	}
}

// NoResultsError is the expected "nothing matched" outcome. Diagnostic is the
// service's payload (candidate funnel, suggested relaxations, alternative
// cities), passed through untouched for display.
type NoResultsError struct {
	Diagnostic json.RawMessage
}

func (e *NoResultsError) Error() string { return utils.ErrNoGenerationResults.Error() }
func (e *NoResultsError) Unwrap() error { return utils.ErrNoGenerationResults }

type Client interface {
	Generate(ctx context.Context, req Request) ([]GeneratedItem, error)
}

type HTTPClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type generateResponse struct {
	Status     string          `json:"status"`
	Items      []GeneratedItem `json:"items"`
	Diagnostic json.RawMessage `json:"diagnostic"`
}

func (c *HTTPClient) Generate(ctx context.Context, in Request) ([]GeneratedItem, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/itineraries/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGenerationUnavailable, err)
	}
	if resp.StatusCode/100 != 2 && resp.StatusCode != http.StatusUnprocessableEntity {
		return nil, fmt.Errorf("%w: status %s", utils.ErrGenerationUnavailable, resp.Status)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrGenerationUnavailable, err)
	}
	if out.Status == "no_results" || len(out.Items) == 0 {
		return nil, &NoResultsError{Diagnostic: out.Diagnostic}
	}
	return out.Items, nil
}
