package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/catalog"
	"github.com/hotelops/guest-services-backend/internal/metrics"
	"github.com/hotelops/guest-services-backend/internal/selection"
)

// Contractor submits one purchase order to the contracting backend, which
// holds the authoritative capacity check. An over-quota rejection must be
// returned as ErrQuotaExceeded.
type Contractor interface {
	Contract(ctx context.Context, order Order) error
}

// Service validates a booking-flow submission against fresh availability and
// issues one purchase per selected date. Both the self-service and the
// staff-assisted flow go through here.
type Service interface {
	Submit(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	resolver   availability.Service
	catalog    catalog.Repository
	contractor Contractor
	logger     zerolog.Logger
}

func NewService(resolver availability.Service, cat catalog.Repository, contractor Contractor, logger zerolog.Logger) Service {
	return &service{
		resolver:   resolver,
		catalog:    cat,
		contractor: contractor,
		logger:     logger.With().Str("component", "purchase").Logger(),
	}
}

func (s *service) Submit(ctx context.Context, req Request) (*Result, error) {
	if len(req.Dates) == 0 || req.StartTime == "" {
		return nil, ErrNoSelection
	}
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// Stay bounds are re-checked against the authoritative reservation
	// window, not the picker's filtering: the available-dates list may have
	// been computed from the default rolling window before the reservation
	// context was known.
	if req.Stay != nil {
		stayRange := availability.Range{
			From: availability.DateOnly(req.Stay.Start),
			To:   availability.DateOnly(req.Stay.End),
		}
		for _, d := range req.Dates {
			if !stayRange.Contains(availability.DateOnly(d)) {
				return nil, ErrOutsideStay
			}
		}
	}

	// Recompute the advisory cap from a fresh snapshot; the picker's own cap
	// may be stale.
	snap, err := s.resolver.Resolve(ctx, availability.Query{
		GuestID:   req.GuestID,
		ServiceID: req.ServiceID,
		Stay:      req.Stay,
	})
	if err != nil {
		return nil, err
	}
	sel := selection.FromRequest(req.Dates, req.StartTime)
	if maxQty := sel.QuantityCap(snap.Days); req.Quantity > maxQty {
		s.logger.Debug().
			Int("requested", req.Quantity).
			Int("cap", maxQty).
			Msg("quantity over advisory cap")
		return nil, ErrQuantityOverCap
	}

	svc, err := s.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// One request per selected date. Succeeded purchases stand on partial
	// failure; the per-date results let the caller retry only the failed
	// subset.
	dates, startTime := sel.Current()
	result := &Result{Results: make([]DateResult, 0, len(dates))}
	for _, d := range dates {
		when, err := combineDateTime(d, startTime)
		if err != nil {
			result.Results = append(result.Results, DateResult{Date: d, Err: err})
			metrics.IncPurchaseSubmitted("invalid")
			continue
		}

		err = s.contractor.Contract(ctx, Order{
			GuestID:         req.GuestID,
			ServiceID:       req.ServiceID,
			ReservationID:   req.ReservationID,
			ServiceDateTime: when,
			Quantity:        req.Quantity,
			UnitPrice:       svc.UnitPrice,
		})
		if err != nil {
			s.logger.Warn().Err(err).
				Time("date", d).
				Str("service_id", req.ServiceID).
				Msg("per-date purchase failed")
			metrics.IncPurchaseSubmitted("error")
		} else {
			metrics.IncPurchaseSubmitted("ok")
		}
		result.Results = append(result.Results, DateResult{Date: d, Err: err})
	}
	return result, nil
}

// combineDateTime merges a date-only value with a wall-clock start time into
// an absolute UTC timestamp for the purchase payload.
func combineDateTime(date time.Time, startTime string) (time.Time, error) {
	clock, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	d := availability.DateOnly(date)
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
