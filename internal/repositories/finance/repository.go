package finance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var transactionColumns = []string{
	"id", "agency_id", "user_id", "type", "amount", "category", "description", "occurred_on", "created_at",
}

// Repository handles the finance ledger.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create logs an income or expense entry.
func (r *Repository) Create(ctx context.Context, agencyID, userID string, req models.CreateTransactionRequest) (*models.FinanceTransaction, error) {
	ctx, span := tracing.StartSpan(ctx, "finance.Repository.Create")
	defer span.End()

	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry := &models.FinanceTransaction{
		ID:          uuid.New().String(),
		AgencyID:    agencyID,
		UserID:      userID,
		Type:        txType,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		OccurredOn:  req.Date.UTC(),
		CreatedAt:   time.Now().UTC(),
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("finance_transactions")
	sb.Cols(transactionColumns...)
	sb.Values(entry.ID, entry.AgencyID, entry.UserID, entry.Type, entry.Amount, entry.Category,
		entry.Description, entry.OccurredOn, entry.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create finance transaction")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create finance transaction")
	}

	return entry, nil
}

// List retrieves a user's ledger entries between from and to, newest first.
func (r *Repository) List(ctx context.Context, agencyID, userID string, from, to *time.Time) ([]models.FinanceTransaction, error) {
	ctx, span := tracing.StartSpan(ctx, "finance.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(transactionColumns...)
	sb.From("finance_transactions")
	where := []string{
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	}
	if from != nil {
		where = append(where, sb.GreaterEqualThan("occurred_on", *from))
	}
	if to != nil {
		where = append(where, sb.LessThan("occurred_on", *to))
	}
	sb.Where(where...)
	sb.OrderBy("occurred_on DESC")

	query, args := sb.Build()
	var entries []models.FinanceTransaction
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list finance transactions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list finance transactions")
	}

	return entries, nil
}

// Totals holds summed income and expenses for a window.
type Totals struct {
	Income   float64 `db:"income" json:"income"`
	Expenses float64 `db:"expenses" json:"expenses"`
}

// SumByUserSince sums a user's ledger from since onward.
func (r *Repository) SumByUserSince(ctx context.Context, agencyID, userID string, since time.Time) (Totals, error) {
	ctx, span := tracing.StartSpan(ctx, "finance.Repository.SumByUserSince")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0) AS income",
		"COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0) AS expenses",
	)
	sb.From("finance_transactions")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
		sb.GreaterEqualThan("occurred_on", since),
	)

	query, args := sb.Build()
	var totals Totals
	if err := r.db.GetContext(ctx, &totals, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to sum finance transactions")
		return Totals{}, httperror.NewHTTPError(http.StatusInternalServerError, "failed to sum finance transactions")
	}

	return totals, nil
}

// Delete removes a ledger entry.
func (r *Repository) Delete(ctx context.Context, agencyID, userID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "finance.Repository.Delete")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	sb.DeleteFrom("finance_transactions")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete finance transaction")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete finance transaction")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("transaction %s not found", id))
	}

	return nil
}
