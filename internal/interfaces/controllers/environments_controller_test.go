package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portrepos "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

func TestListActiveEndpoint(t *testing.T) {
	env := newTestEnv()
	controller := NewEnvironmentsController(env.listUC, env.autoUC)

	env.repo.records["beta"] = &portrepos.LeaseRecord{
		Environment: "beta", Username: "carol",
		ClaimedAt: testNow.Add(-1 * time.Hour).Format(time.RFC3339Nano), DurationHours: 8,
	}
	env.repo.records["alpha"] = &portrepos.LeaseRecord{
		Environment: "alpha", Username: "bob",
		ClaimedAt: testNow.Add(-2 * time.Hour).Format(time.RFC3339Nano), DurationHours: 8,
	}
	// Expired: must not appear.
	env.repo.records["staging"] = &portrepos.LeaseRecord{
		Environment: "staging", Username: "dave",
		ClaimedAt: testNow.Add(-20 * time.Hour).Format(time.RFC3339Nano), DurationHours: 8,
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/environments", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, controller.ListActive(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []ActiveLeaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "alpha", response[0].Environment)
	assert.Equal(t, "bob", response[0].Username)
	assert.Equal(t, 8.0, response[0].DurationHours)
	assert.Equal(t, "beta", response[1].Environment)
}

func TestAutoClaimEndpoint(t *testing.T) {
	env := newTestEnv()
	controller := NewEnvironmentsController(env.listUC, env.autoUC)

	post := func(body string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/environments/autoclaim", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, controller.AutoClaim(e.NewContext(req, rec)))
		return rec
	}

	// First free environment in catalog order.
	rec := post(`{"user":"bob"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alpha", rec.Body.String())

	rec = post(`{"user":"bob"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "beta", rec.Body.String())

	// Pool exhausted.
	rec = post(`{"user":"bob"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAutoClaimMalformedRequest(t *testing.T) {
	env := newTestEnv()
	controller := NewEnvironmentsController(env.listUC, env.autoUC)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/environments/autoclaim", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	require.NoError(t, controller.AutoClaim(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/environments/autoclaim", strings.NewReader(`{"user":""}`))
	rec = httptest.NewRecorder()
	require.NoError(t, controller.AutoClaim(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.repo.records)
}
