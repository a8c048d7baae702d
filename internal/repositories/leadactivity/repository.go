package leadactivity

import (
	"context"
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

// Repository handles the append-only lead activity log.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Append records one activity on a lead. It participates in the context
// transaction when one is open.
func (r *Repository) Append(ctx context.Context, agencyID, leadID, userID string, activityType models.ActivityType, description string) (*models.LeadActivity, error) {
	ctx, span := tracing.StartSpan(ctx, "leadactivity.Repository.Append")
	defer span.End()

	activity := &models.LeadActivity{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		AgencyID:    agencyID,
		Type:        activityType,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("lead_activities")
	sb.Cols("id", "lead_id", "agency_id", "type", "description", "user_id", "created_at")
	sb.Values(activity.ID, activity.LeadID, activity.AgencyID, activity.Type, activity.Description, activity.UserID, activity.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"lead_id": leadID,
			"type":    activityType,
		}).Error("Failed to append lead activity")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to append lead activity")
	}

	return activity, nil
}

// ListByLead returns a lead's activity history, newest first.
func (r *Repository) ListByLead(ctx context.Context, agencyID, leadID string) ([]models.LeadActivity, error) {
	ctx, span := tracing.StartSpan(ctx, "leadactivity.Repository.ListByLead")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "lead_id", "agency_id", "type", "description", "user_id", "created_at")
	sb.From("lead_activities")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("lead_id", leadID),
	)
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var activities []models.LeadActivity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list lead activities")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list lead activities")
	}

	return activities, nil
}

// CountByUserSince tallies a user's activities of one type created at or after
// since. Dashboards use it for dials and appointments per window.
func (r *Repository) CountByUserSince(ctx context.Context, agencyID, userID string, activityType models.ActivityType, since time.Time) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "leadactivity.Repository.CountByUserSince")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("lead_activities")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
		sb.Equal("type", activityType),
		sb.GreaterEqualThan("created_at", since),
	)

	query, args := sb.Build()
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count lead activities")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count lead activities")
	}

	return count, nil
}

// CallOutcomeCounts holds a user's call tallies split by recorded outcome.
type CallOutcomeCounts struct {
	Dials    int `db:"dials"`
	NoAnswer int `db:"no_answer"`
	Set      int `db:"set_count"`
	Sat      int `db:"sat_count"`
}

// CountCallsByOutcomeSince tallies a user's call dispositions from since
// onward, split by the outcome recorded in the description. Dispositions are
// logged as status_change rows with a "Call disposition:" description prefix.
func (r *Repository) CountCallsByOutcomeSince(ctx context.Context, agencyID, userID string, since time.Time) (CallOutcomeCounts, error) {
	ctx, span := tracing.StartSpan(ctx, "leadactivity.Repository.CountCallsByOutcomeSince")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"COUNT(*) AS dials",
		"COUNT(*) FILTER (WHERE description LIKE 'Call disposition: NO_ANSWER%') AS no_answer",
		"COUNT(*) FILTER (WHERE description LIKE 'Call disposition: SET%') AS set_count",
		"COUNT(*) FILTER (WHERE description LIKE 'Call disposition: SAT%') AS sat_count",
	)
	sb.From("lead_activities")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
		sb.Equal("type", models.ActivityTypeStatusChange),
		sb.Like("description", "Call disposition:%"),
		sb.GreaterEqualThan("created_at", since),
	)

	query, args := sb.Build()
	var counts CallOutcomeCounts
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count call outcomes")
		return CallOutcomeCounts{}, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count call outcomes")
	}

	return counts, nil
}

// DailyCount holds one day's activity tally.
type DailyCount struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

// DailyCountsByUser tallies a user's activities of one type per day since a
// cutoff, oldest day first. Days without activity are absent.
func (r *Repository) DailyCountsByUser(ctx context.Context, agencyID, userID string, activityType models.ActivityType, since time.Time) ([]DailyCount, error) {
	ctx, span := tracing.StartSpan(ctx, "leadactivity.Repository.DailyCountsByUser")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("DATE_TRUNC('day', created_at) AS day", "COUNT(*) AS count")
	sb.From("lead_activities")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
		sb.Equal("type", activityType),
		sb.GreaterEqualThan("created_at", since),
	)
	sb.GroupBy("day")
	sb.OrderBy("day ASC")

	query, args := sb.Build()
	var counts []DailyCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to tally daily lead activities")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to tally daily lead activities")
	}

	return counts, nil
}
