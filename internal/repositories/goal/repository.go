package goal

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

var goalColumns = []string{
	"id", "agency_id", "user_id", "type", "target", "current", "deadline", "created_at", "updated_at",
}

// Repository handles goal persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create sets a new goal for a user.
func (r *Repository) Create(ctx context.Context, agencyID, userID string, req models.CreateGoalRequest) (*models.Goal, error) {
	ctx, span := tracing.StartSpan(ctx, "goal.Repository.Create")
	defer span.End()

	now := time.Now().UTC()
	goal := &models.Goal{
		ID:        uuid.New().String(),
		AgencyID:  agencyID,
		UserID:    userID,
		Type:      req.Type,
		Target:    req.Target,
		Current:   0,
		Deadline:  req.Deadline.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("goals")
	sb.Cols(goalColumns...)
	sb.Values(goal.ID, goal.AgencyID, goal.UserID, goal.Type, goal.Target, goal.Current,
		goal.Deadline, goal.CreatedAt, goal.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create goal")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create goal")
	}

	return goal, nil
}

// Get retrieves a goal owned by userID.
func (r *Repository) Get(ctx context.Context, agencyID, userID, id string) (*models.Goal, error) {
	ctx, span := tracing.StartSpan(ctx, "goal.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(goalColumns...)
	sb.From("goals")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	var goal models.Goal
	if err := r.db.GetContext(ctx, &goal, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("goal %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get goal")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get goal")
	}

	return &goal, nil
}

// List retrieves a user's goals, nearest deadline first.
func (r *Repository) List(ctx context.Context, agencyID, userID string) ([]models.Goal, error) {
	ctx, span := tracing.StartSpan(ctx, "goal.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(goalColumns...)
	sb.From("goals")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)
	sb.OrderBy("deadline ASC")

	query, args := sb.Build()
	var goals []models.Goal
	if err := r.db.SelectContext(ctx, &goals, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list goals")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list goals")
	}

	return goals, nil
}

// Update moves a goal's target or progress.
func (r *Repository) Update(ctx context.Context, agencyID, userID, id string, req models.UpdateGoalRequest) (*models.Goal, error) {
	ctx, span := tracing.StartSpan(ctx, "goal.Repository.Update")
	defer span.End()

	existing, err := r.Get(ctx, agencyID, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Target != nil {
		existing.Target = *req.Target
	}
	if req.Current != nil {
		existing.Current = *req.Current
	}
	existing.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("goals")
	sb.Set(
		sb.Assign("target", existing.Target),
		sb.Assign("current", existing.Current),
		sb.Assign("updated_at", existing.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update goal")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update goal")
	}

	return existing, nil
}

// Delete removes a goal.
func (r *Repository) Delete(ctx context.Context, agencyID, userID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "goal.Repository.Delete")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	sb.DeleteFrom("goals")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete goal")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete goal")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("goal %s not found", id))
	}

	return nil
}
