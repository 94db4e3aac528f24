package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
	"github.com/takutakahashi/demoenv-bot/internal/usecases/lease"
)

// ActiveLeaseResponse is one entry of the active-lease listing.
type ActiveLeaseResponse struct {
	Environment   string    `json:"environment"`
	Username      string    `json:"username"`
	ClaimedAt     time.Time `json:"claimed_at"`
	DurationHours float64   `json:"duration_hours"`
}

// autoClaimRequest is the body of an auto-claim call.
type autoClaimRequest struct {
	User string `json:"user"`
}

// EnvironmentsController serves the active-lease listing and the auto-claim
// endpoint.
type EnvironmentsController struct {
	listUC      *lease.ListActiveUseCase
	autoClaimUC *lease.AutoClaimUseCase
}

// NewEnvironmentsController creates a new EnvironmentsController.
func NewEnvironmentsController(listUC *lease.ListActiveUseCase, autoClaimUC *lease.AutoClaimUseCase) *EnvironmentsController {
	return &EnvironmentsController{listUC: listUC, autoClaimUC: autoClaimUC}
}

// GetName returns the name of this controller for logging.
func (c *EnvironmentsController) GetName() string {
	return "EnvironmentsController"
}

// ListActive handles GET /environments. The engine returns leases in
// unspecified order, so they are sorted by environment name here for a
// stable response.
func (c *EnvironmentsController) ListActive(ctx echo.Context) error {
	active, err := c.listUC.Execute(ctx.Request().Context())
	if err != nil {
		log.Printf("Failed to list active environments: %v", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "lease store unavailable")
	}

	response := make([]ActiveLeaseResponse, 0, len(active))
	for _, l := range active {
		response = append(response, ActiveLeaseResponse{
			Environment:   l.Environment(),
			Username:      l.Username(),
			ClaimedAt:     l.ClaimedAt(),
			DurationHours: l.DurationHours(),
		})
	}
	sort.Slice(response, func(i, j int) bool {
		return response[i].Environment < response[j].Environment
	})
	return ctx.JSON(http.StatusOK, response)
}

// AutoClaim handles POST /environments/autoclaim. The first free
// auto-claimable environment is claimed for the requesting user and its
// name returned as plain text; a fully busy pool answers 409.
func (c *EnvironmentsController) AutoClaim(ctx echo.Context) error {
	var req autoClaimRequest
	if err := json.NewDecoder(ctx.Request().Body).Decode(&req); err != nil || req.User == "" {
		return ctx.JSON(http.StatusBadRequest, "Malformed Request")
	}

	l, err := c.autoClaimUC.Execute(ctx.Request().Context(), req.User)
	if err != nil {
		if errors.Is(err, entities.ErrNoCapacity) {
			return ctx.JSON(http.StatusConflict, "no free environment")
		}
		log.Printf("Failed to auto-claim for %s: %v", req.User, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "lease store unavailable")
	}
	return ctx.String(http.StatusOK, l.Environment())
}
