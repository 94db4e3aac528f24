package lease

import (
	"context"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
)

// ReleaseLeaseUseCase releases an environment by writing a zero-duration
// lease, which immediately reads back as expired. Keeping release on the
// claim write path means one record shape and no tombstones; releasing an
// environment nobody holds is a harmless idempotent write.
type ReleaseLeaseUseCase struct {
	claim *ClaimLeaseUseCase
}

// NewReleaseLeaseUseCase creates a new ReleaseLeaseUseCase.
func NewReleaseLeaseUseCase(claim *ClaimLeaseUseCase) *ReleaseLeaseUseCase {
	return &ReleaseLeaseUseCase{claim: claim}
}

// Execute releases the environment on behalf of the given user.
func (uc *ReleaseLeaseUseCase) Execute(ctx context.Context, username, environment string) (*entities.Lease, error) {
	return uc.claim.Execute(ctx, &ClaimLeaseRequest{
		Username:      username,
		Environment:   environment,
		DurationHours: 0,
	})
}
