package lease

import (
	"context"
	"fmt"
	"log"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

// ListActiveUseCase computes the set of currently active leases from the
// raw store table.
type ListActiveUseCase struct {
	repo    repositories.LeaseRepository
	catalog *entities.Catalog
	clock   Clock
}

// NewListActiveUseCase creates a new ListActiveUseCase.
func NewListActiveUseCase(repo repositories.LeaseRepository, catalog *entities.Catalog, clock Clock) *ListActiveUseCase {
	return &ListActiveUseCase{repo: repo, catalog: catalog, clock: clock}
}

// Execute scans the full table and returns every lease that is still live.
// Rows that fail catalog validation or carry an unparseable timestamp are
// skipped with a log line: one bad row must not block the listing of all
// others. The store physically keeps expired rows until they are
// overwritten, so expiry is computed here, at read time. Result order is
// unspecified.
func (uc *ListActiveUseCase) Execute(ctx context.Context) ([]*entities.Lease, error) {
	records, err := uc.repo.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan lease table: %w", err)
	}

	now := uc.clock.Now()
	active := make([]*entities.Lease, 0, len(records))
	for _, rec := range records {
		if !uc.catalog.IsValid(rec.Environment) {
			log.Printf("Skipping lease record for unknown environment %q", rec.Environment)
			continue
		}
		l, err := FromRecord(rec)
		if err != nil {
			log.Printf("Skipping lease record for %q with bad timestamp %q: %v", rec.Environment, rec.ClaimedAt, err)
			continue
		}
		if l.IsActive(now) {
			active = append(active, l)
		}
	}
	return active, nil
}
