package leadbatch

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/lead"
	"github.com/Ramsey-B/clover/internal/repositories/leadbatch"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/utils"
)

// Register registers lead batch routes
func Register(g *echo.Group) {
	g.GET("", ListBatches)
	g.POST("", CreateBatch)
	g.GET("/:id", GetBatch)
	g.DELETE("/:id", DeleteBatch)
}

// ListBatches lists the agency's batches with their performance metrics
func ListBatches(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	ctx, batches, err := ectoinject.GetContext[*leadbatch.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := batches.List(ctx, agencyID)
	if err != nil {
		return err
	}

	ctx, leads, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	counts, err := leads.CountByBatch(ctx, agencyID)
	if err != nil {
		return err
	}

	summaries := make([]models.BatchSummary, 0, len(list))
	for _, b := range list {
		summaries = append(summaries, b.Summarize(counts[b.ID]))
	}

	return c.JSON(http.StatusOK, summaries)
}

// CreateBatch registers a purchased batch
func CreateBatch(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var req models.CreateLeadBatchRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*leadbatch.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, agencyID, userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// GetBatch returns one batch with its performance metrics
func GetBatch(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	id := c.Param("id")

	ctx, batches, err := ectoinject.GetContext[*leadbatch.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	batch, err := batches.Get(ctx, agencyID, id)
	if err != nil {
		return err
	}

	ctx, leads, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	counts, err := leads.CountByBatch(ctx, agencyID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, batch.Summarize(counts[batch.ID]))
}

// DeleteBatch removes a batch record
func DeleteBatch(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*leadbatch.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, agencyID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
