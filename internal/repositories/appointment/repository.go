package appointment

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

// Repository handles appointment persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create books an appointment. It participates in the context transaction when
// one is open.
func (r *Repository) Create(ctx context.Context, agencyID, userID string, leadID *string, title string, start time.Time) (*models.Appointment, error) {
	ctx, span := tracing.StartSpan(ctx, "appointment.Repository.Create")
	defer span.End()

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		AgencyID:  agencyID,
		UserID:    userID,
		LeadID:    leadID,
		Title:     title,
		StartTime: start.UTC(),
		EndTime:   start.UTC().Add(models.AppointmentDuration),
		CreatedAt: time.Now().UTC(),
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("appointments")
	sb.Cols("id", "agency_id", "user_id", "lead_id", "title", "start_time", "end_time", "created_at")
	sb.Values(appt.ID, appt.AgencyID, appt.UserID, appt.LeadID, appt.Title, appt.StartTime, appt.EndTime, appt.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create appointment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create appointment")
	}

	return appt, nil
}

// ListByUser returns a user's appointments between from and to, earliest first.
func (r *Repository) ListByUser(ctx context.Context, agencyID, userID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, span := tracing.StartSpan(ctx, "appointment.Repository.ListByUser")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "agency_id", "user_id", "lead_id", "title", "start_time", "end_time", "created_at")
	sb.From("appointments")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
		sb.GreaterEqualThan("start_time", from),
		sb.LessThan("start_time", to),
	)
	sb.OrderBy("start_time ASC")

	query, args := sb.Build()
	var appts []models.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list appointments")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}

	return appts, nil
}

// Delete removes an appointment.
func (r *Repository) Delete(ctx context.Context, agencyID, userID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "appointment.Repository.Delete")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	sb.DeleteFrom("appointments")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete appointment")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete appointment")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "appointment not found")
	}

	return nil
}
