package clients

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/client"
	"github.com/Ramsey-B/clover/internal/repositories/leadactivity"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/utils"
)

// Register registers client book routes
func Register(g *echo.Group) {
	g.GET("", ListClients)
	g.POST("", CreateClient)
	g.GET("/:id", GetClient)
	g.POST("/:id/policies", AddPolicy)
}

// ListClients lists the agent's book of business
func ListClients(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, repo, err := ectoinject.GetContext[*client.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.List(ctx, agencyID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// CreateClient creates a client, typically from a closed lead
func CreateClient(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var req models.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*client.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, agencyID, userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// GetClient returns a client with policies and summed premium
func GetClient(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*client.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	summary, err := repo.Get(ctx, agencyID, userID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}

// AddPolicyRequest is the request body for writing a policy
type AddPolicyRequest struct {
	Carrier     string     `json:"carrier" validate:"required"`
	ProductType string     `json:"productType" validate:"required"`
	FaceAmount  *float64   `json:"faceAmount,omitempty" validate:"omitempty,gt=0"`
	Premium     float64    `json:"premium" validate:"required,gt=0"`
	IssueDate   *time.Time `json:"issueDate,omitempty"`
}

// AddPolicy writes a policy for a client
func AddPolicy(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	var req AddPolicyRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*client.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	// The client lookup doubles as the ownership check.
	summary, err := repo.Get(ctx, agencyID, userID, id)
	if err != nil {
		return err
	}

	policy, err := repo.AddPolicy(ctx, agencyID, id, models.Policy{
		Carrier:     req.Carrier,
		ProductType: req.ProductType,
		FaceAmount:  req.FaceAmount,
		Premium:     req.Premium,
		IssueDate:   req.IssueDate,
	})
	if err != nil {
		return err
	}

	if summary.LeadID != nil {
		if ctx, activities, err := ectoinject.GetContext[*leadactivity.Repository](ctx); err == nil {
			description := fmt.Sprintf("Application written: %s %s", policy.Carrier, policy.ProductType)
			_, _ = activities.Append(ctx, agencyID, *summary.LeadID, userID, models.ActivityTypeApplication, description)
		}
	}

	return c.JSON(http.StatusCreated, policy)
}
