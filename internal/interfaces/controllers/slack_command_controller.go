package controllers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/interfaces/presenters"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/lease"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/ports/services"
)

// SlackCommandController handles the Slack slash-command webhook. Slack
// posts a URL-encoded form with at least text and user_name; the response
// body is shown privately to the invoking user, while claims and releases
// are additionally announced on the shared channel.
type SlackCommandController struct {
	claimUC   *lease.ClaimLeaseUseCase
	releaseUC *lease.ReleaseLeaseUseCase
	listUC    *lease.ListActiveUseCase
	notifier  services.ChatNotifier
	presenter *presenters.LeasePresenter
	catalog   *entities.Catalog
	clock     lease.Clock
}

// NewSlackCommandController creates a new SlackCommandController.
func NewSlackCommandController(
	claimUC *lease.ClaimLeaseUseCase,
	releaseUC *lease.ReleaseLeaseUseCase,
	listUC *lease.ListActiveUseCase,
	notifier services.ChatNotifier,
	presenter *presenters.LeasePresenter,
	catalog *entities.Catalog,
	clock lease.Clock,
) *SlackCommandController {
	return &SlackCommandController{
		claimUC:   claimUC,
		releaseUC: releaseUC,
		listUC:    listUC,
		notifier:  notifier,
		presenter: presenter,
		catalog:   catalog,
		clock:     clock,
	}
}

// GetName returns the name of this controller for logging.
func (c *SlackCommandController) GetName() string {
	return "SlackCommandController"
}

// HandleCommand handles POST /hooks/slack/command.
func (c *SlackCommandController) HandleCommand(ctx echo.Context) error {
	text := ctx.FormValue("text")
	username := ctx.FormValue("user_name")

	switch cmd := ParseCommand(text, c.catalog).(type) {
	case ClaimCommand:
		return c.handleClaim(ctx, username, cmd)
	case FreeCommand:
		return c.handleFree(ctx, username, cmd)
	case ListCommand:
		return c.handleList(ctx, cmd)
	default:
		return ctx.String(http.StatusOK, c.presenter.HelpText())
	}
}

func (c *SlackCommandController) handleClaim(ctx echo.Context, username string, cmd ClaimCommand) error {
	l, err := c.claimUC.Execute(ctx.Request().Context(), &lease.ClaimLeaseRequest{
		Username:      username,
		Environment:   cmd.Environment,
		DurationHours: lease.ParseDurationToken(cmd.DurationToken),
	})
	if err != nil {
		log.Printf("Failed to claim %s for %s: %v", cmd.Environment, username, err)
		return ctx.String(http.StatusInternalServerError, "Something went wrong, please try again")
	}

	c.post(ctx, c.presenter.ClaimNotification(l))
	return ctx.String(http.StatusOK, c.presenter.ClaimConfirmation(l))
}

func (c *SlackCommandController) handleFree(ctx echo.Context, username string, cmd FreeCommand) error {
	l, err := c.releaseUC.Execute(ctx.Request().Context(), username, cmd.Environment)
	if err != nil {
		log.Printf("Failed to release %s for %s: %v", cmd.Environment, username, err)
		return ctx.String(http.StatusInternalServerError, "Something went wrong, please try again")
	}

	c.post(ctx, c.presenter.ReleaseNotification(l.Username(), l.Environment()))
	return ctx.String(http.StatusOK, c.presenter.ReleaseConfirmation(l.Environment()))
}

func (c *SlackCommandController) handleList(ctx echo.Context, cmd ListCommand) error {
	active, err := c.listUC.Execute(ctx.Request().Context())
	if err != nil {
		log.Printf("Failed to list active environments: %v", err)
		return ctx.String(http.StatusInternalServerError, "Something went wrong, please try again")
	}

	now := c.clock.Now()
	if cmd.All {
		return ctx.String(http.StatusOK, c.presenter.FullList(active, now))
	}
	return ctx.String(http.StatusOK, c.presenter.ActiveList(active, now))
}

// post announces to the shared channel. Delivery failures are logged and
// swallowed: the lease write already committed and the user still gets
// their confirmation.
func (c *SlackCommandController) post(ctx echo.Context, text string) {
	if err := c.notifier.Post(ctx.Request().Context(), text); err != nil {
		log.Printf("Warning: failed to post channel notification: %v", err)
	}
}
