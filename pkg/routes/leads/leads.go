package leads

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/lead"
	"github.com/Ramsey-B/clover/internal/repositories/leadactivity"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/dialing"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/utils"
)

// Register registers lead routes
func Register(g *echo.Group) {
	g.GET("", ListLeads)
	g.POST("", CreateLead)
	g.GET("/dial-ready", DialReady)
	g.GET("/:id", GetLead)
	g.PUT("/:id", UpdateLead)
	g.DELETE("/:id", DeleteLead)
	g.POST("/:id/disposition", ResolveDisposition)
}

// ListLeads lists the agent's leads with optional filters
func ListLeads(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var filter lead.ListFilter
	if raw := c.QueryParam("status"); raw != "" {
		status, err := models.ParseLeadStatus(raw)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("source"); raw != "" {
		source, err := models.ParseLeadSource(raw)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.Source = &source
	}
	if raw := c.QueryParam("tag"); raw != "" {
		filter.Tag = &raw
	}
	if raw := c.QueryParam("search"); raw != "" {
		filter.Search = &raw
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	ctx, repo, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	items, total, err := repo.List(ctx, agencyID, userID, filter, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"leads": items,
		"total": total,
	})
}

// CreateLead creates a new lead owned by the caller
func CreateLead(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, agencyID, userID, req)
	if err != nil {
		return err
	}

	metrics.LeadsCreatedTotal.WithLabelValues(agencyID, string(created.Source)).Inc()

	if ctx, activities, err := ectoinject.GetContext[*leadactivity.Repository](ctx); err == nil {
		// History is best-effort; the lead itself is already durable.
		_, _ = activities.Append(ctx, agencyID, created.ID, userID, models.ActivityTypeCreated, "Lead created")
	}

	if ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx); err == nil && emitter != nil {
		_ = emitter.EmitLeadCreated(ctx, created)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetLead returns a lead with its activity history
func GetLead(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	found, err := repo.Get(ctx, agencyID, userID, id)
	if err != nil {
		return err
	}

	ctx, activities, err := ectoinject.GetContext[*leadactivity.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	history, err := activities.ListByLead(ctx, agencyID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.LeadDetail{Lead: *found, Activities: history})
}

// UpdateLead applies partial edits to a lead
func UpdateLead(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	var req models.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.Update(ctx, agencyID, userID, id, req)
	if err != nil {
		return err
	}

	if ctx, activities, err := ectoinject.GetContext[*leadactivity.Repository](ctx); err == nil {
		_, _ = activities.Append(ctx, agencyID, id, userID, models.ActivityTypeUpdated, "Lead updated")
	}

	if ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx); err == nil && emitter != nil {
		_ = emitter.EmitLeadUpdated(ctx, updated)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteLead retires a lead to DEAD
func DeleteLead(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*lead.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, agencyID, userID, id); err != nil {
		return err
	}

	if ctx, activities, err := ectoinject.GetContext[*leadactivity.Repository](ctx); err == nil {
		_, _ = activities.Append(ctx, agencyID, id, userID, models.ActivityTypeDeleted, "Lead deleted")
	}

	if ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx); err == nil && emitter != nil {
		_ = emitter.EmitLeadDeleted(ctx, agencyID, id, userID)
	}

	return c.NoContent(http.StatusNoContent)
}

// DialReady returns the agent's current call queue
func DialReady(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, selector, err := ectoinject.GetContext[*dialing.Selector](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	queue, err := selector.Select(ctx, agencyID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, queue)
}

// ResolveDisposition records the outcome of a call on a lead
func ResolveDisposition(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	var req models.DispositionRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, resolver, err := ectoinject.GetContext[*dialing.Resolver](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := resolver.Resolve(ctx, agencyID, userID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result.Lead)
}
