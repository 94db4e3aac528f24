package deploy

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	domainservices "github.com/takutakahashi/demoenv-bot/internal/domain/services"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/lease"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/ports/services"
)

// demoRefRe matches branch refs that target a demo environment, e.g.
// refs/heads/demo-alpha.
var demoRefRe = regexp.MustCompile(`(?i)^refs/heads/demo-([^/]+)$`)

// EnvironmentFromRef extracts the environment name from a push ref. The
// second return is false for refs outside the demo-<name> convention, which
// callers treat as a no-op rather than an error.
func EnvironmentFromRef(ref string) (string, bool) {
	m := demoRefRe.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// RefreshLeaseUseCase re-claims an environment when someone deploys to it.
type RefreshLeaseUseCase struct {
	repo          repositories.LeaseRepository
	notifier      services.ChatNotifier
	canonicalizer *domainservices.UsernameCanonicalizer
	clock         lease.Clock
}

// NewRefreshLeaseUseCase creates a new RefreshLeaseUseCase.
func NewRefreshLeaseUseCase(
	repo repositories.LeaseRepository,
	notifier services.ChatNotifier,
	canonicalizer *domainservices.UsernameCanonicalizer,
	clock lease.Clock,
) *RefreshLeaseUseCase {
	return &RefreshLeaseUseCase{repo: repo, notifier: notifier, canonicalizer: canonicalizer, clock: clock}
}

// RefreshLeaseRequest is the push data relevant to a lease refresh.
type RefreshLeaseRequest struct {
	Username    string
	Environment string
	Repository  string
}

// Execute re-claims the environment under the pushing user and restarts its
// expiry clock. A live lease keeps its current window; an expired or
// missing one gets the default. Every push re-claims, even when the
// environment is held by someone else: the lease transfers to the last
// pusher.
//
// The chat notification is fire-and-forget: a delivery failure is logged
// and never unwinds the committed lease write.
func (uc *RefreshLeaseUseCase) Execute(ctx context.Context, req *RefreshLeaseRequest) (*entities.Lease, error) {
	durationHours := float64(entities.DefaultClaimDurationHours)
	existing, err := uc.repo.Get(ctx, req.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to read lease for %s: %w", req.Environment, err)
	}
	if existing != nil {
		if current, err := lease.FromRecord(existing); err == nil && current.IsActive(uc.clock.Now()) {
			durationHours = current.DurationHours()
		}
	}

	l := entities.NewLease(
		req.Environment,
		uc.canonicalizer.Canonicalize(req.Username),
		uc.clock.Now(),
		durationHours,
	)
	if err := uc.repo.Put(ctx, lease.ToRecord(l)); err != nil {
		return nil, fmt.Errorf("failed to refresh lease for %s: %w", req.Environment, err)
	}

	text := fmt.Sprintf("%s is using *%s*/%s", l.Username(), l.Environment(), req.Repository)
	if err := uc.notifier.Post(ctx, text); err != nil {
		log.Printf("Warning: failed to post deploy notification for %s: %v", l.Environment(), err)
	}
	return l, nil
}
