package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/middleware"
	"github.com/Ramsey-B/clover/pkg/policy"
)

// newTestServer builds an echo instance with the production middleware chain
// (minus OIDC) and a ping route behind each policy gate.
func newTestServer() *echo.Echo {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Context())
	e.Use(middleware.TestAuth())

	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	api := e.Group("/api/v1")
	api.GET("/leads/ping", ok, middleware.Authorize(policy.ResourceLeads))
	api.GET("/team/ping", ok, middleware.Authorize(policy.ResourceTeam))
	api.GET("/founder/ping", ok, middleware.Authorize(policy.ResourceFounder))
	api.GET("/recruits/ping", ok, middleware.Authorize(policy.ResourceRecruit))
	api.GET("/tenant/ping", ok, middleware.Authorize(policy.ResourceTenant))

	return e
}

func makeRequest(e *echo.Echo, path, agencyID, userID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if agencyID != "" {
		req.Header.Set("X-Agency-ID", agencyID)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if role != "" {
		req.Header.Set("X-Role", role)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouteGuards_Unauthenticated(t *testing.T) {
	e := newTestServer()

	for _, path := range []string{
		"/api/v1/leads/ping",
		"/api/v1/team/ping",
		"/api/v1/founder/ping",
		"/api/v1/tenant/ping",
	} {
		rec := makeRequest(e, path, "", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestRouteGuards_AgentAccess(t *testing.T) {
	e := newTestServer()

	rec := makeRequest(e, "/api/v1/leads/ping", "agency-1", "user-1", "AGENT")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = makeRequest(e, "/api/v1/team/ping", "agency-1", "user-1", "AGENT")
	assert.Equal(t, http.StatusForbidden, rec.Code, "agents cannot read team rollups")

	rec = makeRequest(e, "/api/v1/founder/ping", "agency-1", "user-1", "AGENT")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = makeRequest(e, "/api/v1/tenant/ping", "agency-1", "user-1", "AGENT")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouteGuards_ManagerAccess(t *testing.T) {
	e := newTestServer()

	rec := makeRequest(e, "/api/v1/team/ping", "agency-1", "user-1", "MANAGER")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = makeRequest(e, "/api/v1/founder/ping", "agency-1", "user-1", "MANAGER")
	assert.Equal(t, http.StatusForbidden, rec.Code, "founder console needs FOUNDER or above")
}

func TestRouteGuards_FounderAccess(t *testing.T) {
	e := newTestServer()

	rec := makeRequest(e, "/api/v1/founder/ping", "agency-1", "user-1", "FOUNDER")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = makeRequest(e, "/api/v1/tenant/ping", "agency-1", "user-1", "FOUNDER")
	assert.Equal(t, http.StatusForbidden, rec.Code, "tenant purge is platform-owner only")
}

func TestRouteGuards_PlatformOwnerAccess(t *testing.T) {
	e := newTestServer()

	rec := makeRequest(e, "/api/v1/tenant/ping", "agency-1", "user-1", "PLATFORM_OWNER")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteGuards_RecruitAccess(t *testing.T) {
	e := newTestServer()

	rec := makeRequest(e, "/api/v1/recruits/ping", "agency-1", "user-1", "RECRUIT")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = makeRequest(e, "/api/v1/leads/ping", "agency-1", "user-1", "RECRUIT")
	assert.Equal(t, http.StatusForbidden, rec.Code, "recruits do not work leads")
}

func TestRouteGuards_UnknownRole(t *testing.T) {
	e := newTestServer()

	rec := makeRequest(e, "/api/v1/leads/ping", "agency-1", "user-1", "SUPERVISOR")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
