package tenant

import (
	"net/http"

	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/database"
)

// Register registers tenant routes
func Register(g *echo.Group) {
	g.DELETE("/tenant/:agency_id", deleteTenantData)
}

// deleteTenantData deletes all data for a specific agency
// This is intended for testing purposes to clean up test data
func deleteTenantData(c echo.Context) error {
	ctx := c.Request().Context()

	agencyID := c.Param("agency_id")
	if agencyID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "agency_id is required",
		})
	}

	// Get database and logger from DI
	ctx, db, err := ectoinject.GetContext[database.DB](ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get database",
		})
	}

	ctx, logger, _ := ectoinject.GetContext[ectologger.Logger](ctx)
	if logger != nil {
		logger.WithContext(ctx).WithFields(map[string]any{"agency_id": agencyID}).Info("Deleting all data for agency")
	}

	counts := make(map[string]int64)

	// Delete in order respecting foreign key constraints

	// 1. Delete policies (references clients)
	result, err := db.ExecContext(ctx, "DELETE FROM policies WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["policies"], _ = result.RowsAffected()
	}

	// 2. Delete clients (references leads)
	result, err = db.ExecContext(ctx, "DELETE FROM clients WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["clients"], _ = result.RowsAffected()
	}

	// 3. Delete lead activities (references leads)
	result, err = db.ExecContext(ctx, "DELETE FROM lead_activities WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["lead_activities"], _ = result.RowsAffected()
	}

	// 4. Delete appointments (references leads)
	result, err = db.ExecContext(ctx, "DELETE FROM appointments WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["appointments"], _ = result.RowsAffected()
	}

	// 5. Delete tasks (references leads)
	result, err = db.ExecContext(ctx, "DELETE FROM tasks WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["tasks"], _ = result.RowsAffected()
	}

	// 6. Delete leads (references lead_batches)
	result, err = db.ExecContext(ctx, "DELETE FROM leads WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["leads"], _ = result.RowsAffected()
	}

	// 7. Delete lead batches
	result, err = db.ExecContext(ctx, "DELETE FROM lead_batches WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["lead_batches"], _ = result.RowsAffected()
	}

	// 8. Delete finance transactions
	result, err = db.ExecContext(ctx, "DELETE FROM finance_transactions WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["finance_transactions"], _ = result.RowsAffected()
	}

	// 9. Delete goals
	result, err = db.ExecContext(ctx, "DELETE FROM goals WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["goals"], _ = result.RowsAffected()
	}

	// 10. Delete recruit profiles
	result, err = db.ExecContext(ctx, "DELETE FROM recruit_profiles WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["recruit_profiles"], _ = result.RowsAffected()
	}

	// 11. Delete agents
	result, err = db.ExecContext(ctx, "DELETE FROM agents WHERE agency_id = $1", agencyID)
	if err == nil {
		counts["agents"], _ = result.RowsAffected()
	}

	if logger != nil {
		fields := map[string]any{"agency_id": agencyID}
		for k, v := range counts {
			fields[k] = v
		}
		logger.WithContext(ctx).WithFields(fields).Info("Agency data deleted")
	}

	response := map[string]interface{}{
		"message":   "agency data deleted",
		"agency_id": agencyID,
	}
	for k, v := range counts {
		response[k] = v
	}

	return c.JSON(http.StatusOK, response)
}
