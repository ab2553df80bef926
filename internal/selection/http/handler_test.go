package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/guest-services-backend/internal/availability"
)

const testServiceID = "7f4b1a3e-4c2d-4f6a-9b1e-2d3c4e5f6a7b"

type fakeResolver struct {
	slots []availability.JudgedSlot
	err   error
}

func (f *fakeResolver) Resolve(_ context.Context, _ availability.Query) (*availability.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &availability.Snapshot{Slots: f.slots, Days: availability.NewDaySet(f.slots)}, nil
}

func newTestRouter(resolver availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set("guestID", "guest-1")
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(resolver), fakeAuth)
	return r
}

func postQuote(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/services/"+testServiceID+"/quote", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestQuote(t *testing.T) {
	d := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		{Record: availability.Record{Date: d, StartTime: "10:00", RemainingCapacity: 3}, Available: true},
		{Record: availability.Record{Date: d.AddDate(0, 0, 1), StartTime: "10:00", RemainingCapacity: 5}, Available: true},
	}}

	w := postQuote(t, newTestRouter(resolver), `{"dates":["2025-06-10","2025-06-11"],"time":"10:00"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.QuantityCap)
	assert.Equal(t, []string{"2025-06-10", "2025-06-11"}, resp.Dates)
	assert.Equal(t, "10:00", resp.Time)
}

func TestQuote_InvalidDate(t *testing.T) {
	w := postQuote(t, newTestRouter(&fakeResolver{}), `{"dates":["not-a-date"],"time":"10:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuote_InvalidTime(t *testing.T) {
	w := postQuote(t, newTestRouter(&fakeResolver{}), `{"dates":["2025-06-10"],"time":"25:99"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuote_SourceUnavailable(t *testing.T) {
	resolver := &fakeResolver{err: availability.ErrSourceUnavailable}
	w := postQuote(t, newTestRouter(resolver), `{"dates":["2025-06-10"],"time":"10:00"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
