package availability

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []Record
	err     error
	calls   atomic.Int32
	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeSource) FetchAvailability(_ context.Context, _ string, r Range) ([]Record, error) {
	f.calls.Add(1)
	f.gotFrom, f.gotTo = r.From, r.To
	return f.records, f.err
}

type fakeContracted struct {
	services []ContractedService
	err      error
	calls    atomic.Int32
}

func (f *fakeContracted) FetchContracted(_ context.Context, _, _ string, _ Range) ([]ContractedService, error) {
	f.calls.Add(1)
	return f.services, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_Resolve(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{records: []Record{
		{Date: date(2025, 6, 10), StartTime: "10:00", RemainingCapacity: 3},
		{Date: date(2025, 6, 10), StartTime: "14:00", RemainingCapacity: 0},
		{Date: date(2025, 6, 11), StartTime: "10:00", RemainingCapacity: 2},
	}}
	contracted := &fakeContracted{services: []ContractedService{
		{ServiceDateTime: time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC), Quantity: 1},
	}}

	svc := NewServiceWithClock(source, contracted, DefaultWindowDays, zerolog.Nop(), fixedClock(now))

	snap, err := svc.Resolve(context.Background(), Query{GuestID: "g1", ServiceID: "s1"})
	require.NoError(t, err)
	require.Len(t, snap.Slots, 3)

	// Both sources queried once for the derived window.
	assert.EqualValues(t, 1, source.calls.Load())
	assert.EqualValues(t, 1, contracted.calls.Load())
	assert.Equal(t, date(2025, 6, 9), source.gotFrom)
	assert.Equal(t, date(2025, 7, 9), source.gotTo)

	assert.Equal(t, []time.Time{date(2025, 6, 10)}, snap.Days.AvailableDates())

	eleven := snap.Days.SlotAt(date(2025, 6, 11), "10:00")
	require.NotNil(t, eleven)
	assert.True(t, eleven.AlreadyBooked)
	assert.Equal(t, ReasonAlreadyBooked, eleven.Reason)
}

func TestService_Resolve_StayWindowOverridesDefault(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{}
	svc := NewServiceWithClock(source, &fakeContracted{}, DefaultWindowDays, zerolog.Nop(), fixedClock(now))

	stay := &StayWindow{Start: date(2025, 7, 1), End: date(2025, 7, 5)}
	snap, err := svc.Resolve(context.Background(), Query{GuestID: "g1", ServiceID: "s1", Stay: stay})
	require.NoError(t, err)

	assert.Equal(t, date(2025, 7, 1), source.gotFrom)
	assert.Equal(t, date(2025, 7, 5), source.gotTo)
	assert.Empty(t, snap.Days.AvailableDates())
}

func TestService_Resolve_SourceFailure(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{err: errors.New("backend down")}
	contracted := &fakeContracted{}
	svc := NewServiceWithClock(source, contracted, DefaultWindowDays, zerolog.Nop(), fixedClock(now))

	_, err := svc.Resolve(context.Background(), Query{GuestID: "g1", ServiceID: "s1"})
	require.Error(t, err)

	// Both fetches ran: classification waits for both, it does not
	// short-circuit the join.
	assert.EqualValues(t, 1, contracted.calls.Load())
}

func TestService_Resolve_ContractedFailure(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(&fakeSource{}, &fakeContracted{err: errors.New("timeout")}, DefaultWindowDays, zerolog.Nop(), fixedClock(now))

	_, err := svc.Resolve(context.Background(), Query{GuestID: "g1", ServiceID: "s1"})
	require.Error(t, err)
}

func TestService_Resolve_SequenceIncreases(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(&fakeSource{}, &fakeContracted{}, DefaultWindowDays, zerolog.Nop(), fixedClock(now))

	first, err := svc.Resolve(context.Background(), Query{ServiceID: "s1"})
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), Query{ServiceID: "s1"})
	require.NoError(t, err)

	assert.Greater(t, second.Seq, first.Seq)
}
