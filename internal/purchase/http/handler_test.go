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

	"github.com/hotelops/guest-services-backend/internal/purchase"
)

const testServiceID = "7f4b1a3e-4c2d-4f6a-9b1e-2d3c4e5f6a7b"
const testGuestID = "1c9e8d7f-6a5b-4c3d-8e2f-1a2b3c4d5e6f"

type fakeService struct {
	result *purchase.Result
	err    error
	gotReq purchase.Request
}

func (f *fakeService) Submit(_ context.Context, req purchase.Request) (*purchase.Result, error) {
	f.gotReq = req
	return f.result, f.err
}

func newTestRouter(svc purchase.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set("guestID", testGuestID)
		c.Set("reservationID", "res-1")
		c.Set("stayStart", "2025-06-09")
		c.Set("stayEnd", "2025-06-15")
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), fakeAuth)
	return r
}

func post(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	svc := &fakeService{result: &purchase.Result{Results: []purchase.DateResult{
		{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
	}}}
	router := newTestRouter(svc)

	w := post(t, router, "/v1/services/"+testServiceID+"/purchases",
		`{"dates":["2025-06-10"],"time":"10:00","quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.AllSucceeded)
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].OK)

	// Identity and stay come from the token context, never the body.
	assert.Equal(t, testGuestID, svc.gotReq.GuestID)
	assert.Equal(t, "res-1", svc.gotReq.ReservationID)
	require.NotNil(t, svc.gotReq.Stay)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), svc.gotReq.Stay.Start)
	assert.Equal(t, 2, svc.gotReq.Quantity)
}

func TestCreate_PartialFailure(t *testing.T) {
	svc := &fakeService{result: &purchase.Result{Results: []purchase.DateResult{
		{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), Err: purchase.ErrQuotaExceeded},
	}}}
	router := newTestRouter(svc)

	w := post(t, router, "/v1/services/"+testServiceID+"/purchases",
		`{"dates":["2025-06-10","2025-06-11"],"time":"10:00","quantity":1}`)
	require.Equal(t, http.StatusMultiStatus, w.Code)

	var resp PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.AllSucceeded)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].OK)
	assert.False(t, resp.Results[1].OK)
	assert.NotEmpty(t, resp.Results[1].Error)
}

func TestCreate_ValidationErrors(t *testing.T) {
	router := newTestRouter(&fakeService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing quantity", `{"dates":["2025-06-10"],"time":"10:00"}`},
		{"zero quantity", `{"dates":["2025-06-10"],"time":"10:00","quantity":0}`},
		{"bad date", `{"dates":["junk"],"time":"10:00","quantity":1}`},
		{"bad time", `{"dates":["2025-06-10"],"time":"junk","quantity":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, "/v1/services/"+testServiceID+"/purchases", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreate_ServiceErrorMapped(t *testing.T) {
	svc := &fakeService{err: purchase.ErrQuantityOverCap}
	router := newTestRouter(svc)

	w := post(t, router, "/v1/services/"+testServiceID+"/purchases",
		`{"dates":["2025-06-10"],"time":"10:00","quantity":9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAssisted(t *testing.T) {
	svc := &fakeService{result: &purchase.Result{Results: []purchase.DateResult{
		{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
	}}}
	router := newTestRouter(svc)

	body := `{"guest_id":"` + testGuestID + `","stay_start":"2025-06-09","stay_end":"2025-06-15",` +
		`"dates":["2025-06-10"],"time":"10:00","quantity":1}`
	w := post(t, router, "/v1/staff/services/"+testServiceID+"/purchases", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// The operator-supplied stay bounds apply, not the token's.
	require.NotNil(t, svc.gotReq.Stay)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), svc.gotReq.Stay.End)
	assert.Equal(t, testGuestID, svc.gotReq.GuestID)
}

func TestCreateAssisted_OneSidedStayRejected(t *testing.T) {
	router := newTestRouter(&fakeService{})

	body := `{"guest_id":"` + testGuestID + `","stay_start":"2025-06-09",` +
		`"dates":["2025-06-10"],"time":"10:00","quantity":1}`
	w := post(t, router, "/v1/staff/services/"+testServiceID+"/purchases", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
