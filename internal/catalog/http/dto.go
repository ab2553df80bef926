package http

import (
	"time"

	"github.com/hotelops/guest-services-backend/internal/catalog"
)

type ServiceResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FixedDuration bool      `json:"is_fixed_duration"`
	UnitPrice     int64     `json:"unit_price"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		FixedDuration: s.FixedDuration,
		UnitPrice:     s.UnitPrice,
		CreatedAt:     s.CreatedAt,
	}
}

type ListServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}
