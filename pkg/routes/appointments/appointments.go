package appointments

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/appointment"
	"github.com/Ramsey-B/clover/pkg/context"
)

// Register registers appointment calendar routes
func Register(g *echo.Group) {
	g.GET("", ListAppointments)
	g.DELETE("/:id", DeleteAppointment)
}

// ListAppointments lists the caller's appointments in a time window. The
// window defaults to the next 7 days.
func ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	now := time.Now().UTC()
	from := now
	to := now.Add(7 * 24 * time.Hour)

	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		from = parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		to = parsed
	}

	ctx, repo, err := ectoinject.GetContext[*appointment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.ListByUser(ctx, agencyID, userID, from, to)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// DeleteAppointment cancels an appointment
func DeleteAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*appointment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, agencyID, userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func parseDateParam(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
