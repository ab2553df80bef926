package catalog

import (
	"net/http"
	"time"

	"github.com/hotelops/guest-services-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "service not found")

// Service is a purchasable hotel service (e.g., spa session, airport
// transfer). Catalog data is owned by the operations backend; this module
// only reads it.
type Service struct {
	ID            string
	Name          string
	FixedDuration bool
	UnitPrice     int64 // minor currency units, snapshotted into purchases
	CreatedAt     time.Time
}
