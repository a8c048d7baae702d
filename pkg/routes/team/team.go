package team

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/dashboard"
)

// Register registers team routes
func Register(g *echo.Group) {
	g.GET("/stats", GetTeamStats)
	g.GET("/members", ListMembers)
}

// GetTeamStats returns the manager rollup with a row per agent
func GetTeamStats(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	ctx, svc, err := ectoinject.GetContext[*dashboard.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	view, err := svc.TeamStats(ctx, agencyID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// ListMembers returns the member rows without the aggregate card
func ListMembers(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	ctx, svc, err := ectoinject.GetContext[*dashboard.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	view, err := svc.TeamStats(ctx, agencyID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view.Members)
}
