package purchase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ContractorClient submits purchase orders to the contracting backend over
// HTTP. It maps the backend's authoritative over-quota rejection (409) to
// ErrQuotaExceeded so callers can prompt a re-selection instead of showing a
// generic failure.
type ContractorClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewContractorClient(baseURL, apiKey string) *ContractorClient {
	return &ContractorClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type orderDTO struct {
	GuestID         string `json:"guest_id"`
	ServiceID       string `json:"service_id"`
	ReservationID   string `json:"reservation_id,omitempty"`
	ServiceDateTime string `json:"service_datetime"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unit_price"`
}

func (c *ContractorClient) Contract(ctx context.Context, order Order) error {
	body, err := json.Marshal(orderDTO{
		GuestID:         order.GuestID,
		ServiceID:       order.ServiceID,
		ReservationID:   order.ReservationID,
		ServiceDateTime: order.ServiceDateTime.Format(time.RFC3339),
		Quantity:        order.Quantity,
		UnitPrice:       order.UnitPrice,
	})
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/api/v1/contracted-services"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contract purchase: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return ErrQuotaExceeded
	case resp.StatusCode >= 300:
		return fmt.Errorf("contract purchase: http %d", resp.StatusCode)
	}
	return nil
}
