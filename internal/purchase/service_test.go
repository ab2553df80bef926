package purchase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/catalog"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

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

type fakeCatalog struct {
	svc *catalog.Service
	err error
}

func (f *fakeCatalog) GetByID(_ context.Context, _ string) (*catalog.Service, error) {
	return f.svc, f.err
}

func (f *fakeCatalog) List(_ context.Context) ([]*catalog.Service, error) {
	return []*catalog.Service{f.svc}, f.err
}

type fakeContractor struct {
	orders []Order
	errFor map[string]error // keyed by YYYY-MM-DD
}

func (f *fakeContractor) Contract(_ context.Context, order Order) error {
	f.orders = append(f.orders, order)
	if f.errFor != nil {
		if err, ok := f.errFor[order.ServiceDateTime.Format("2006-01-02")]; ok {
			return err
		}
	}
	return nil
}

func availableSlot(d time.Time, start string, capacity int) availability.JudgedSlot {
	return availability.JudgedSlot{
		Record:    availability.Record{Date: d, StartTime: start, RemainingCapacity: capacity},
		Available: true,
	}
}

func newTestService(resolver availability.Service, contractor Contractor) Service {
	cat := &fakeCatalog{svc: &catalog.Service{ID: "svc-1", Name: "Spa", UnitPrice: 4500}}
	return NewService(resolver, cat, contractor, zerolog.Nop())
}

func validRequest() Request {
	return Request{
		GuestID:       "guest-1",
		ServiceID:     "svc-1",
		ReservationID: "res-1",
		Dates:         []time.Time{date(2025, 6, 10)},
		StartTime:     "10:00",
		Quantity:      1,
	}
}

func TestSubmit_NoSelection(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeContractor{})

	req := validRequest()
	req.Dates = nil
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoSelection)

	req = validRequest()
	req.StartTime = ""
	_, err = svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSubmit_InvalidQuantity(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeContractor{})

	req := validRequest()
	req.Quantity = 0
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestSubmit_QuantityOverCap(t *testing.T) {
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		availableSlot(date(2025, 6, 10), "10:00", 5),
		availableSlot(date(2025, 6, 10), "15:00", 2),
	}}
	contractor := &fakeContractor{}
	svc := newTestService(resolver, contractor)

	// Picking the 2-capacity time and asking for 3 must be rejected.
	req := validRequest()
	req.StartTime = "15:00"
	req.Quantity = 3
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrQuantityOverCap)
	assert.Empty(t, contractor.orders, "no request may be issued before validation passes")
}

func TestSubmit_MultiDateCapUsesTightestDay(t *testing.T) {
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		availableSlot(date(2025, 6, 10), "10:00", 5),
		availableSlot(date(2025, 6, 11), "10:00", 2),
	}}
	svc := newTestService(resolver, &fakeContractor{})

	req := validRequest()
	req.Dates = []time.Time{date(2025, 6, 10), date(2025, 6, 11)}
	req.Quantity = 3
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrQuantityOverCap)

	req.Quantity = 2
	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.AllSucceeded())
}

func TestSubmit_OutsideStayWindow(t *testing.T) {
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		availableSlot(date(2025, 6, 10), "10:00", 5),
	}}
	contractor := &fakeContractor{}
	svc := newTestService(resolver, contractor)

	req := validRequest()
	req.Stay = &availability.StayWindow{Start: date(2025, 6, 11), End: date(2025, 6, 15)}
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideStay)
	assert.Empty(t, contractor.orders)
}

func TestSubmit_OnePurchasePerDate(t *testing.T) {
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		availableSlot(date(2025, 6, 10), "10:00", 5),
		availableSlot(date(2025, 6, 11), "10:00", 5),
	}}
	contractor := &fakeContractor{}
	svc := newTestService(resolver, contractor)

	req := validRequest()
	req.Dates = []time.Time{date(2025, 6, 11), date(2025, 6, 10)}
	req.Quantity = 2
	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, contractor.orders, 2)
	assert.True(t, result.AllSucceeded())

	// Orders carry the combined timestamp, the quantity and the unit-price
	// snapshot, in ascending date order.
	assert.Equal(t, time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC), contractor.orders[0].ServiceDateTime)
	assert.Equal(t, time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC), contractor.orders[1].ServiceDateTime)
	for _, order := range contractor.orders {
		assert.Equal(t, 2, order.Quantity)
		assert.EqualValues(t, 4500, order.UnitPrice)
		assert.Equal(t, "guest-1", order.GuestID)
		assert.Equal(t, "res-1", order.ReservationID)
	}
}

func TestSubmit_PartialFailureReportedPerDate(t *testing.T) {
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		availableSlot(date(2025, 6, 10), "10:00", 5),
		availableSlot(date(2025, 6, 11), "10:00", 5),
		availableSlot(date(2025, 6, 12), "10:00", 5),
	}}
	contractor := &fakeContractor{errFor: map[string]error{
		"2025-06-11": ErrQuotaExceeded,
	}}
	svc := newTestService(resolver, contractor)

	req := validRequest()
	req.Dates = []time.Time{date(2025, 6, 10), date(2025, 6, 11), date(2025, 6, 12)}
	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	// Succeeded purchases stand; the failed subset is reported distinctly.
	assert.False(t, result.AllSucceeded())
	require.Len(t, result.Results, 3)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, date(2025, 6, 11), failed[0].Date)
	assert.ErrorIs(t, failed[0].Err, ErrQuotaExceeded)

	assert.Len(t, contractor.orders, 3, "every date is still attempted")
}

func TestSubmit_ResolverFailurePropagates(t *testing.T) {
	svc := newTestService(&fakeResolver{err: availability.ErrSourceUnavailable}, &fakeContractor{})

	_, err := svc.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, availability.ErrSourceUnavailable)
}

func TestSubmit_CatalogFailurePropagates(t *testing.T) {
	resolver := &fakeResolver{slots: []availability.JudgedSlot{
		availableSlot(date(2025, 6, 10), "10:00", 5),
	}}
	cat := &fakeCatalog{err: errors.New("catalog down")}
	svc := NewService(resolver, cat, &fakeContractor{}, zerolog.Nop())

	_, err := svc.Submit(context.Background(), validRequest())
	assert.Error(t, err)
}
