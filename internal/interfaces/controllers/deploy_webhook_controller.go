package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/takutakahashi/demoenv-bot/internal/infrastructure/webhook"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/deploy"
)

// pushPayload is the slice of a GitHub push event this service cares about.
type pushPayload struct {
	Ref    string `json:"ref"`
	Sender struct {
		Login string `json:"login"`
	} `json:"sender"`
	Repository struct {
		Name string `json:"name"`
	} `json:"repository"`
}

// DeployWebhookController receives GitHub push webhooks and refreshes the
// lease of the targeted demo environment.
type DeployWebhookController struct {
	refreshUC *deploy.RefreshLeaseUseCase
	verifier  *webhook.SignatureVerifier
	secret    string
}

// NewDeployWebhookController creates a new DeployWebhookController.
func NewDeployWebhookController(refreshUC *deploy.RefreshLeaseUseCase, secret string) *DeployWebhookController {
	return &DeployWebhookController{
		refreshUC: refreshUC,
		verifier:  webhook.NewSignatureVerifier(),
		secret:    secret,
	}
}

// GetName returns the name of this controller for logging.
func (c *DeployWebhookController) GetName() string {
	return "DeployWebhookController"
}

// HandlePush handles POST /hooks/github.
//
// The signature is checked before anything else; a bad or missing
// X-Hub-Signature terminates the request with 401. The literal body "isup"
// is a liveness probe. Pushes to refs outside the demo-<name> convention
// are a no-op answered with 204, distinct from the 400 given to a body that
// fails to parse.
func (c *DeployWebhookController) HandlePush(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		log.Printf("Failed to read webhook body: %v", err)
		return ctx.JSON(http.StatusBadRequest, "Malformed Request")
	}

	signature := ctx.Request().Header.Get("X-Hub-Signature")
	if !c.verifier.VerifyGitHubSignature(body, signature, c.secret) {
		log.Printf("Webhook signature verification failed")
		return ctx.JSON(http.StatusUnauthorized, "Not authenticated")
	}

	if string(body) == "isup" {
		return ctx.JSON(http.StatusOK, "I am up")
	}

	var payload pushPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Failed to parse webhook body: %v", err)
		return ctx.JSON(http.StatusBadRequest, "Malformed Request")
	}

	environment, ok := deploy.EnvironmentFromRef(payload.Ref)
	if !ok {
		return ctx.NoContent(http.StatusNoContent)
	}

	if _, err := c.refreshUC.Execute(ctx.Request().Context(), &deploy.RefreshLeaseRequest{
		Username:    payload.Sender.Login,
		Environment: environment,
		Repository:  payload.Repository.Name,
	}); err != nil {
		log.Printf("Failed to refresh lease for %s: %v", environment, err)
		return ctx.JSON(http.StatusInternalServerError, "Internal Server Error")
	}
	return ctx.NoContent(http.StatusNoContent)
}
