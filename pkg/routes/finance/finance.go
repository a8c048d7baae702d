package finance

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/finance"
	"github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/utils"
)

// Register registers finance ledger routes
func Register(g *echo.Group) {
	g.GET("/transactions", ListTransactions)
	g.POST("/transactions", CreateTransaction)
	g.DELETE("/transactions/:id", DeleteTransaction)
	g.GET("/summary", GetSummary)
}

func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Plain dates are accepted too
		parsed, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, httperror.NewHTTPError(http.StatusBadRequest, name+" must be RFC3339 or YYYY-MM-DD")
		}
	}
	return &parsed, nil
}

// ListTransactions lists the caller's ledger entries
func ListTransactions(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	from, err := parseDateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return err
	}

	ctx, repo, err := ectoinject.GetContext[*finance.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	entries, err := repo.List(ctx, agencyID, userID, from, to)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}

// GetSummary sums the caller's ledger over the trailing 30 days
func GetSummary(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	ctx, repo, err := ectoinject.GetContext[*finance.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	since := time.Now().UTC().Add(-30 * 24 * time.Hour)
	totals, err := repo.SumByUserSince(ctx, agencyID, userID, since)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"income":   totals.Income,
		"expenses": totals.Expenses,
		"net":      totals.Income - totals.Expenses,
	})
}

// CreateTransaction logs an income or expense entry
func CreateTransaction(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	var req models.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := utils.Validate(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*finance.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, agencyID, userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// DeleteTransaction removes a ledger entry
func DeleteTransaction(c echo.Context) error {
	ctx := c.Request().Context()
	agencyID := context.GetAgencyID(ctx)
	userID := context.GetUserID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*finance.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, agencyID, userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
