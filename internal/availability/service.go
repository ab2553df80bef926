package availability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelops/guest-services-backend/internal/metrics"
)

// Query identifies one resolver evaluation: which service, for which guest,
// and optionally the guest's stay window. Without a stay window the rolling
// default range applies.
type Query struct {
	GuestID   string
	ServiceID string
	Stay      *StayWindow
}

// Snapshot is the immutable result of one resolve cycle. Seq increases
// monotonically per issued cycle so consumers can discard results that were
// superseded while in flight.
type Snapshot struct {
	Seq       uint64
	Range     Range
	Slots     []JudgedSlot
	Days      *DaySet
	FetchedAt time.Time
}

// Service runs resolve cycles: derive the query window, fetch both
// collaborator sources, classify, and group.
//
// The result is advisory. RemainingCapacity figures are snapshots and the
// purchase backend re-validates capacity atomically at submission; the
// resolver must never be treated as the reservation authority.
type Service interface {
	Resolve(ctx context.Context, q Query) (*Snapshot, error)
}

type service struct {
	source     Source
	contracted ContractedSource
	clock      func() time.Time
	windowDays int
	seq        atomic.Uint64
	logger     zerolog.Logger
}

// NewService creates a resolver service over the two collaborator sources.
func NewService(source Source, contracted ContractedSource, windowDays int, logger zerolog.Logger) Service {
	return NewServiceWithClock(source, contracted, windowDays, logger, time.Now)
}

// NewServiceWithClock allows pinning the evaluation instant in tests.
func NewServiceWithClock(source Source, contracted ContractedSource, windowDays int, logger zerolog.Logger, clock func() time.Time) Service {
	return &service{
		source:     source,
		contracted: contracted,
		clock:      clock,
		windowDays: windowDays,
		logger:     logger.With().Str("component", "resolver").Logger(),
	}
}

func (s *service) Resolve(ctx context.Context, q Query) (*Snapshot, error) {
	now := s.clock()
	r := DeriveRange(q.Stay, now, s.windowDays)
	seq := s.seq.Add(1)
	started := time.Now()

	type availResult struct {
		records []Record
		err     error
	}
	type contractedResult struct {
		services []ContractedService
		err      error
	}

	availCh := make(chan availResult, 1)
	contractedCh := make(chan contractedResult, 1)

	go func() {
		records, err := s.source.FetchAvailability(ctx, q.ServiceID, r)
		availCh <- availResult{records, err}
	}()
	go func() {
		services, err := s.contracted.FetchContracted(ctx, q.GuestID, q.ServiceID, r)
		contractedCh <- contractedResult{services, err}
	}()

	// Classification only proceeds once both sources have answered for this
	// window; there is no merge-as-they-arrive path.
	av := <-availCh
	co := <-contractedCh
	metrics.ObserveResolve(time.Since(started))

	if av.err != nil {
		metrics.IncSourceFetch("availability", "error")
		s.logger.Warn().Err(av.err).Str("service_id", q.ServiceID).Msg("availability fetch failed")
		return nil, av.err
	}
	metrics.IncSourceFetch("availability", "ok")

	if co.err != nil {
		metrics.IncSourceFetch("contracted", "error")
		s.logger.Warn().Err(co.err).Str("service_id", q.ServiceID).Msg("contracted services fetch failed")
		return nil, co.err
	}
	metrics.IncSourceFetch("contracted", "ok")

	slots := Classify(av.records, co.services, now)
	for _, slot := range slots {
		if slot.Available {
			metrics.IncSlotClassified("available")
		} else {
			metrics.IncSlotClassified(string(slot.Reason))
		}
	}

	return &Snapshot{
		Seq:       seq,
		Range:     r,
		Slots:     slots,
		Days:      NewDaySet(slots),
		FetchedAt: now,
	}, nil
}
