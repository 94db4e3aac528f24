package lease

import (
	"context"
	"fmt"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/domain/services"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

// ClaimLeaseUseCase writes a lease for a named environment.
type ClaimLeaseUseCase struct {
	repo          repositories.LeaseRepository
	catalog       *entities.Catalog
	canonicalizer *services.UsernameCanonicalizer
	clock         Clock
}

// NewClaimLeaseUseCase creates a new ClaimLeaseUseCase.
func NewClaimLeaseUseCase(
	repo repositories.LeaseRepository,
	catalog *entities.Catalog,
	canonicalizer *services.UsernameCanonicalizer,
	clock Clock,
) *ClaimLeaseUseCase {
	return &ClaimLeaseUseCase{repo: repo, catalog: catalog, canonicalizer: canonicalizer, clock: clock}
}

// ClaimLeaseRequest is the input for claiming an environment.
type ClaimLeaseRequest struct {
	Username      string
	Environment   string
	DurationHours float64
}

// Execute validates the environment against the catalog, canonicalizes the
// username, and overwrites any prior record for that environment. The write
// is unconditional: concurrent claims on the same environment race and the
// last writer wins, mirroring the store's overwrite semantics.
func (uc *ClaimLeaseUseCase) Execute(ctx context.Context, req *ClaimLeaseRequest) (*entities.Lease, error) {
	if !uc.catalog.IsValid(req.Environment) {
		return nil, entities.ErrInvalidEnvironment{Name: req.Environment}
	}

	l := entities.NewLease(
		uc.catalog.Canonical(req.Environment),
		uc.canonicalizer.Canonicalize(req.Username),
		uc.clock.Now(),
		req.DurationHours,
	)
	if err := uc.repo.Put(ctx, ToRecord(l)); err != nil {
		return nil, fmt.Errorf("failed to write lease for %s: %w", l.Environment(), err)
	}
	return l, nil
}
