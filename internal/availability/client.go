package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hotelops/guest-services-backend/internal/pkg/request"
)

// Client is an HTTP client for the operations backend availability and
// contracted-services endpoints. It implements both Source and
// ContractedSource.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a backend client with baseURL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type recordDTO struct {
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time,omitempty"`
	IsFixedDuration   bool   `json:"is_fixed_duration"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

type contractedDTO struct {
	ServiceDateTime time.Time `json:"service_datetime"`
	Quantity        int       `json:"quantity"`
}

// FetchAvailability queries GET /api/v1/services/{id}/availability with
// inclusive date-only bounds.
func (c *Client) FetchAvailability(ctx context.Context, serviceID string, r Range) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/api/v1/services/%s/availability?date_from=%s&date_to=%s",
		c.baseURL,
		url.PathEscape(serviceID),
		r.From.Format(request.DateFormat),
		r.To.Format(request.DateFormat),
	)

	var wrap struct {
		Records []recordDTO `json:"records"`
	}
	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, fmt.Errorf("fetch availability: %w", err)
	}

	records := make([]Record, 0, len(wrap.Records))
	for _, dto := range wrap.Records {
		date, err := request.ParseDate(dto.Date)
		if err != nil {
			// Leave the date zeroed; the classifier treats the row as
			// malformed and never offers it.
			date = time.Time{}
		}
		records = append(records, Record{
			Date:              date,
			StartTime:         dto.StartTime,
			EndTime:           dto.EndTime,
			FixedDuration:     dto.IsFixedDuration,
			RemainingCapacity: dto.RemainingCapacity,
		})
	}
	return records, nil
}

// FetchContracted queries GET /api/v1/guests/{id}/contracted-services with
// full-day timestamp bounds.
func (c *Client) FetchContracted(ctx context.Context, guestID, serviceID string, r Range) ([]ContractedService, error) {
	from, to := r.TimestampBounds()
	endpoint := fmt.Sprintf("%s/api/v1/guests/%s/contracted-services?service_id=%s&datetime_from=%s&datetime_to=%s",
		c.baseURL,
		url.PathEscape(guestID),
		url.QueryEscape(serviceID),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)),
	)

	var wrap struct {
		Services []contractedDTO `json:"services"`
	}
	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, fmt.Errorf("fetch contracted services: %w", err)
	}

	contracted := make([]ContractedService, 0, len(wrap.Services))
	for _, dto := range wrap.Services {
		contracted = append(contracted, ContractedService{
			ServiceDateTime: dto.ServiceDateTime,
			Quantity:        dto.Quantity,
		})
	}
	return contracted, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: http %d", ErrSourceUnavailable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
