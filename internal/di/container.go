package di

import (
	"context"
	"fmt"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/domain/services"
	"github.com/takutakahashi/demoenv-bot/internal/infrastructure/repositories"
	infraservices "github.com/takutakahashi/demoenv-bot/internal/infrastructure/services"
	"github.com/takutakahashi/demoenv-bot/internal/interfaces/controllers"
	"github.com/takutakahashi/demoenv-bot/internal/interfaces/presenters"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/deploy"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/lease"
	repositories_ports "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
	services_ports "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/services"
	"github.com/takutakahashi/demoenv-bot/pkg/config"
)

// Container holds all dependencies for the application, wired once from the
// loaded configuration.
type Container struct {
	Config        *config.Config
	Catalog       *entities.Catalog
	Canonicalizer *services.UsernameCanonicalizer

	// Repositories
	LeaseRepo repositories_ports.LeaseRepository

	// Services
	Notifier services_ports.ChatNotifier

	// Use cases
	ClaimLeaseUC   *lease.ClaimLeaseUseCase
	ReleaseLeaseUC *lease.ReleaseLeaseUseCase
	ListActiveUC   *lease.ListActiveUseCase
	AutoClaimUC    *lease.AutoClaimUseCase
	RefreshLeaseUC *deploy.RefreshLeaseUseCase

	// Presenters
	LeasePresenter *presenters.LeasePresenter

	// Controllers
	SlackCommandController  *controllers.SlackCommandController
	DeployWebhookController *controllers.DeployWebhookController
	EnvironmentsController  *controllers.EnvironmentsController
	HealthController        *controllers.HealthController
}

// NewContainer creates and wires a dependency injection container.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.Catalog = entities.NewCatalog(cfg.Environments.AutoClaimable, cfg.Environments.Fixed)
	c.Canonicalizer = services.NewUsernameCanonicalizer(cfg.UserAliases)

	if err := c.initRepositories(ctx); err != nil {
		return nil, err
	}
	c.initServices()
	c.initUseCases()
	c.initPresenters()
	c.initControllers()
	return c, nil
}

func (c *Container) initRepositories(ctx context.Context) error {
	switch c.Config.Storage.Type {
	case "dynamodb", "":
		repo, err := repositories.NewDynamoLeaseRepository(ctx, &c.Config.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize lease store: %w", err)
		}
		c.LeaseRepo = repo
	case "memory":
		c.LeaseRepo = repositories.NewMemoryLeaseRepository()
	default:
		return fmt.Errorf("unknown storage type: %s", c.Config.Storage.Type)
	}
	return nil
}

func (c *Container) initServices() {
	c.Notifier = infraservices.NewSlackWebhookNotifier(
		c.Config.Slack.WebhookURL,
		c.Config.Slack.Channel,
		c.Config.Slack.BotUsername,
	)
}

func (c *Container) initUseCases() {
	clock := lease.SystemClock{}
	c.ListActiveUC = lease.NewListActiveUseCase(c.LeaseRepo, c.Catalog, clock)
	c.ClaimLeaseUC = lease.NewClaimLeaseUseCase(c.LeaseRepo, c.Catalog, c.Canonicalizer, clock)
	c.ReleaseLeaseUC = lease.NewReleaseLeaseUseCase(c.ClaimLeaseUC)
	c.AutoClaimUC = lease.NewAutoClaimUseCase(c.ListActiveUC, c.ClaimLeaseUC, c.Catalog)
	c.RefreshLeaseUC = deploy.NewRefreshLeaseUseCase(c.LeaseRepo, c.Notifier, c.Canonicalizer, clock)
}

func (c *Container) initPresenters() {
	c.LeasePresenter = presenters.NewLeasePresenter(c.Catalog, c.Config.DisplayLocation())
}

func (c *Container) initControllers() {
	c.SlackCommandController = controllers.NewSlackCommandController(
		c.ClaimLeaseUC,
		c.ReleaseLeaseUC,
		c.ListActiveUC,
		c.Notifier,
		c.LeasePresenter,
		c.Catalog,
		lease.SystemClock{},
	)
	c.DeployWebhookController = controllers.NewDeployWebhookController(c.RefreshLeaseUC, c.Config.GitHub.WebhookSecret)
	c.EnvironmentsController = controllers.NewEnvironmentsController(c.ListActiveUC, c.AutoClaimUC)
	c.HealthController = controllers.NewHealthController()
}
