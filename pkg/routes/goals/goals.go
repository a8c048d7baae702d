package goals

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/goal"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/utils"
)

// Register registers goal routes
func Register(g *echo.Group) {
	g.GET("", ListGoals)
	g.POST("", CreateGoal)
	g.PUT("/:id", UpdateGoal)
	g.DELETE("/:id", DeleteGoal)
}

// ListGoals lists the agent's goals ordered by deadline
func ListGoals(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, repo, err := ectoinject.GetContext[*goal.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.List(ctx, agencyID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// CreateGoal sets a new goal for the agent
func CreateGoal(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var req models.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*goal.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, agencyID, userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateGoal moves a goal's progress or target
func UpdateGoal(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	var req models.UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*goal.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.Update(ctx, agencyID, userID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteGoal removes a goal
func DeleteGoal(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*goal.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, agencyID, userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
