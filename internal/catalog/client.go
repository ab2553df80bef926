package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client reads the catalog over the operations backend REST API, used when
// the resolver runs without direct database access.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type serviceDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FixedDuration bool      `json:"is_fixed_duration"`
	UnitPrice     int64     `json:"unit_price"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Client) GetByID(ctx context.Context, id string) (*Service, error) {
	endpoint := fmt.Sprintf("%s/api/v1/services/%s", c.baseURL, url.PathEscape(id))
	var dto serviceDTO
	if err := c.doGet(ctx, endpoint, &dto); err != nil {
		return nil, err
	}
	return fromDTO(dto), nil
}

func (c *Client) List(ctx context.Context) ([]*Service, error) {
	endpoint := fmt.Sprintf("%s/api/v1/services", c.baseURL)
	var wrap struct {
		Services []serviceDTO `json:"services"`
	}
	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, err
	}
	services := make([]*Service, 0, len(wrap.Services))
	for _, dto := range wrap.Services {
		services = append(services, fromDTO(dto))
	}
	return services, nil
}

func fromDTO(dto serviceDTO) *Service {
	return &Service{
		ID:            dto.ID,
		Name:          dto.Name,
		FixedDuration: dto.FixedDuration,
		UnitPrice:     dto.UnitPrice,
		CreatedAt:     dto.CreatedAt,
	}
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
		return fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("catalog fetch: http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
