package founder

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/dashboard"
)

// Register registers founder console routes
func Register(g *echo.Group) {
	g.GET("/stats", GetOverview)
	g.GET("/agencies", ListAgencies)
}

// GetOverview returns the platform-wide rollup with a row per agency
func GetOverview(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, svc, err := ectoinject.GetContext[*dashboard.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	view, err := svc.FounderStats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// ListAgencies returns the agency rows without the aggregate card
func ListAgencies(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, svc, err := ectoinject.GetContext[*dashboard.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	view, err := svc.FounderStats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view.Agencies)
}
