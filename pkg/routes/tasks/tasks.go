package tasks

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/task"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
)

// Register registers task routes
func Register(g *echo.Group) {
	g.GET("", ListTasks)
	g.PUT("/:id/status", UpdateTaskStatus)
}

// ListTasks lists tasks assigned to the caller, optionally filtered by status
func ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var status *models.TaskStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := models.ParseTaskStatus(raw)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		status = &parsed
	}

	ctx, repo, err := ectoinject.GetContext[*task.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.ListByAssignee(ctx, agencyID, userID, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateTaskStatusRequest is the request body for completing or reopening a task
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTaskStatus moves a task to a new status
func UpdateTaskStatus(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	var req UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status, err := models.ParseTaskStatus(req.Status)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*task.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.UpdateStatus(ctx, agencyID, userID, id, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}
