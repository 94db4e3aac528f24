package lease

import (
	"context"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
)

// AutoClaimUseCase picks a free environment for a user who didn't name one.
type AutoClaimUseCase struct {
	listActive *ListActiveUseCase
	claim      *ClaimLeaseUseCase
	catalog    *entities.Catalog
}

// NewAutoClaimUseCase creates a new AutoClaimUseCase.
func NewAutoClaimUseCase(listActive *ListActiveUseCase, claim *ClaimLeaseUseCase, catalog *entities.Catalog) *AutoClaimUseCase {
	return &AutoClaimUseCase{listActive: listActive, claim: claim, catalog: catalog}
}

// Execute walks the auto-claimable pool in catalog order and claims the
// first environment with no active lease, for the default window. Fixed
// environments (staging, demo) are never considered. When the whole pool is
// busy it returns entities.ErrNoCapacity; there is no queueing.
//
// The free check and the claim are two store round trips with no lock in
// between, so two simultaneous auto-claims can land on the same
// environment; the last write wins, same as an explicit claim race.
func (uc *AutoClaimUseCase) Execute(ctx context.Context, username string) (*entities.Lease, error) {
	active, err := uc.listActive.Execute(ctx)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]struct{}, len(active))
	for _, l := range active {
		busy[l.Environment()] = struct{}{}
	}

	for _, name := range uc.catalog.AutoClaimable() {
		if _, taken := busy[name]; taken {
			continue
		}
		return uc.claim.Execute(ctx, &ClaimLeaseRequest{
			Username:      username,
			Environment:   name,
			DurationHours: entities.DefaultClaimDurationHours,
		})
	}
	return nil, entities.ErrNoCapacity
}
