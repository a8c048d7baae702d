package dashboard

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/dashboard"
)

// Register registers dashboard routes
func Register(g *echo.Group) {
	g.GET("/stats", GetStats)
	g.GET("/metrics", GetDailyMetrics)
}

// GetStats returns the agent's summary cards
func GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, svc, err := ectoinject.GetContext[*dashboard.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	stats, err := svc.AgentStats(ctx, agencyID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// GetDailyMetrics returns the agent's activity tallies for today
func GetDailyMetrics(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, svc, err := ectoinject.GetContext[*dashboard.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	daily, err := svc.AgentDaily(ctx, agencyID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, daily)
}
