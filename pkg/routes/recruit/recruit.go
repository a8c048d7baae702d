package recruit

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/recruit"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
)

// RegisterProfile registers the recruit's self-service profile routes
func RegisterProfile(g *echo.Group) {
	g.GET("", GetProfile)
	g.PUT("", UpdateProfile)
}

// Register registers the owner-side recruiting pipeline routes
func Register(g *echo.Group) {
	g.GET("", ListRecruits)
	g.PUT("/:userId/status", UpdateRecruitStatus)
}

// GetProfile returns the calling recruit's onboarding profile
func GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, repo, err := ectoinject.GetContext[*recruit.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	profile, err := repo.GetByUser(ctx, agencyID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile upserts the calling recruit's contact details
func UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var req models.UpdateRecruitProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, repo, err := ectoinject.GetContext[*recruit.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	profile, err := repo.Upsert(ctx, agencyID, userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// ListRecruits lists the agency's recruiting pipeline
func ListRecruits(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	ctx, repo, err := ectoinject.GetContext[*recruit.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.ListByAgency(ctx, agencyID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateRecruitStatusRequest moves a recruit through the onboarding pipeline
type UpdateRecruitStatusRequest struct {
	Status string `json:"status"`
}

// UpdateRecruitStatus moves a recruit to a new pipeline status
func UpdateRecruitStatus(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	recruitUserID := c.Param("userId")

	var req UpdateRecruitStatusRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status, err := models.ParseRecruitStatus(req.Status)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*recruit.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.UpdateStatus(ctx, agencyID, recruitUserID, status); err != nil {
		return err
	}

	profile, err := repo.GetByUser(ctx, agencyID, recruitUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}
