package recruit

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

var profileColumns = []string{
	"id", "agency_id", "user_id", "status", "phone", "address", "city", "state",
	"zip_code", "date_of_birth", "created_at", "updated_at",
}

// Repository handles recruit onboarding profiles.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// GetByUser retrieves a recruit's own profile.
func (r *Repository) GetByUser(ctx context.Context, agencyID, userID string) (*models.RecruitProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "recruit.Repository.GetByUser")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(profileColumns...)
	sb.From("recruit_profiles")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	var profile models.RecruitProfile
	if err := r.db.GetContext(ctx, &profile, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "recruit profile not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get recruit profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get recruit profile")
	}

	return &profile, nil
}

// Upsert creates the recruit's profile on first save and applies contact-detail
// edits after that. Status is never touched here.
func (r *Repository) Upsert(ctx context.Context, agencyID, userID string, req models.UpdateRecruitProfileRequest) (*models.RecruitProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "recruit.Repository.Upsert")
	defer span.End()

	existing, err := r.GetByUser(ctx, agencyID, userID)
	if err != nil {
		if !httperror.IsHTTPError(err) || httperror.GetStatusCode(err) != http.StatusNotFound {
			return nil, err
		}
		now := time.Now().UTC()
		existing = &models.RecruitProfile{
			ID:        uuid.New().String(),
			AgencyID:  agencyID,
			UserID:    userID,
			Status:    models.RecruitStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyProfileEdits(existing, req)

		// Two concurrent first saves race on (agency_id, user_id); the loser
		// no-ops instead of erroring.
		sb := database.NewInsertBuilder().
			InsertInto("recruit_profiles").
			Cols(profileColumns...).
			Values(existing.ID, existing.AgencyID, existing.UserID, existing.Status, existing.Phone, existing.Address,
				existing.City, existing.State, existing.ZipCode, existing.DateOfBirth, existing.CreatedAt, existing.UpdatedAt).
			OnConflictDoNothing()

		query, args := sb.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to create recruit profile")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create recruit profile")
		}
		return existing, nil
	}

	applyProfileEdits(existing, req)
	existing.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("recruit_profiles")
	sb.Set(
		sb.Assign("phone", existing.Phone),
		sb.Assign("address", existing.Address),
		sb.Assign("city", existing.City),
		sb.Assign("state", existing.State),
		sb.Assign("zip_code", existing.ZipCode),
		sb.Assign("date_of_birth", existing.DateOfBirth),
		sb.Assign("updated_at", existing.UpdatedAt),
	)
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update recruit profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update recruit profile")
	}

	return existing, nil
}

func applyProfileEdits(profile *models.RecruitProfile, req models.UpdateRecruitProfileRequest) {
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Address != nil {
		profile.Address = req.Address
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.State != nil {
		profile.State = req.State
	}
	if req.ZipCode != nil {
		profile.ZipCode = req.ZipCode
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = req.DateOfBirth
	}
}

// ListByAgency returns an agency's recruit pipeline, newest first.
func (r *Repository) ListByAgency(ctx context.Context, agencyID string) ([]models.RecruitProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "recruit.Repository.ListByAgency")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(profileColumns...)
	sb.From("recruit_profiles")
	sb.Where(sb.Equal("agency_id", agencyID))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var profiles []models.RecruitProfile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list recruit profiles")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list recruit profiles")
	}

	return profiles, nil
}

// UpdateStatus advances a recruit through the onboarding pipeline.
func (r *Repository) UpdateStatus(ctx context.Context, agencyID, userID string, status models.RecruitStatus) error {
	ctx, span := tracing.StartSpan(ctx, "recruit.Repository.UpdateStatus")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("recruit_profiles")
	sb.Set(
		sb.Assign("status", status),
		sb.Assign("updated_at", time.Now().UTC()),
	)
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("user_id", userID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update recruit status")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update recruit status")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "recruit profile not found")
	}

	return nil
}
