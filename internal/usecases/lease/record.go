package lease

import (
	"time"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

// FromRecord interprets a raw store record as a lease. It fails on a
// timestamp the store adapter could not have written itself; callers on the
// read path discard such rows rather than propagating the error.
func FromRecord(rec *repositories.LeaseRecord) (*entities.Lease, error) {
	claimedAt, err := time.Parse(time.RFC3339Nano, rec.ClaimedAt)
	if err != nil {
		return nil, err
	}
	return entities.NewLease(rec.Environment, rec.Username, claimedAt, rec.DurationHours), nil
}

// ToRecord converts a lease to its raw store shape. RFC3339Nano keeps the
// claim instant exact through a store round trip.
func ToRecord(l *entities.Lease) *repositories.LeaseRecord {
	return &repositories.LeaseRecord{
		Environment:   l.Environment(),
		Username:      l.Username(),
		ClaimedAt:     l.ClaimedAt().Format(time.RFC3339Nano),
		DurationHours: l.DurationHours(),
	}
}
