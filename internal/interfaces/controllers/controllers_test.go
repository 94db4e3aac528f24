package controllers

import (
	"context"
	"time"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/domain/services"
	"github.com/takutakahashi/demoenv-bot/internal/interfaces/presenters"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/deploy"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/lease"
	portrepos "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

// Shared fixtures for the controller tests.

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type mockLeaseRepo struct {
	records map[string]*portrepos.LeaseRecord
	scanErr error
}

func newMockLeaseRepo() *mockLeaseRepo {
	return &mockLeaseRepo{records: make(map[string]*portrepos.LeaseRecord)}
}

func (r *mockLeaseRepo) Get(_ context.Context, environment string) (*portrepos.LeaseRecord, error) {
	if rec, ok := r.records[environment]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *mockLeaseRepo) Put(_ context.Context, record *portrepos.LeaseRecord) error {
	cp := *record
	r.records[record.Environment] = &cp
	return nil
}

func (r *mockLeaseRepo) ScanAll(_ context.Context) ([]*portrepos.LeaseRecord, error) {
	if r.scanErr != nil {
		return nil, r.scanErr
	}
	var records []*portrepos.LeaseRecord
	for _, rec := range r.records {
		cp := *rec
		records = append(records, &cp)
	}
	return records, nil
}

type mockNotifier struct {
	posts []string
}

func (n *mockNotifier) Post(_ context.Context, text string) error {
	n.posts = append(n.posts, text)
	return nil
}

// testEnv bundles everything a controller test needs, wired against the
// in-memory mock repository with a pinned clock.
type testEnv struct {
	repo      *mockLeaseRepo
	notifier  *mockNotifier
	catalog   *entities.Catalog
	presenter *presenters.LeasePresenter

	claimUC   *lease.ClaimLeaseUseCase
	releaseUC *lease.ReleaseLeaseUseCase
	listUC    *lease.ListActiveUseCase
	autoUC    *lease.AutoClaimUseCase
	refreshUC *deploy.RefreshLeaseUseCase
}

func newTestEnv() *testEnv {
	repo := newMockLeaseRepo()
	notifier := &mockNotifier{}
	catalog := entities.NewCatalog([]string{"alpha", "beta"}, []string{"staging"})
	canonicalizer := services.NewUsernameCanonicalizer(nil)
	clock := fixedClock{t: testNow}

	claimUC := lease.NewClaimLeaseUseCase(repo, catalog, canonicalizer, clock)
	listUC := lease.NewListActiveUseCase(repo, catalog, clock)

	return &testEnv{
		repo:      repo,
		notifier:  notifier,
		catalog:   catalog,
		presenter: presenters.NewLeasePresenter(catalog, time.UTC),
		claimUC:   claimUC,
		releaseUC: lease.NewReleaseLeaseUseCase(claimUC),
		listUC:    listUC,
		autoUC:    lease.NewAutoClaimUseCase(listUC, claimUC, catalog),
		refreshUC: deploy.NewRefreshLeaseUseCase(repo, notifier, canonicalizer, clock),
	}
}

func (env *testEnv) slackCommandController() *SlackCommandController {
	return NewSlackCommandController(
		env.claimUC, env.releaseUC, env.listUC,
		env.notifier, env.presenter, env.catalog, fixedClock{t: testNow},
	)
}
