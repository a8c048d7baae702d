package lead

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

var leadColumns = []string{
	"id", "agency_id", "owner_id", "first_name", "last_name", "email", "phone",
	"age", "state", "status", "source", "tag", "notes", "batch_id", "created_at", "updated_at",
}

// Repository handles lead persistence. Every query is scoped to an agency and,
// where the caller is an agent, to the owning agent; a lead outside that scope
// is indistinguishable from one that does not exist.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new lead repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// DB exposes the underlying database for callers that manage transactions.
func (r *Repository) DB() database.DB {
	return r.db
}

// Create inserts a new lead owned by ownerID.
func (r *Repository) Create(ctx context.Context, agencyID, ownerID string, req models.CreateLeadRequest) (*models.Lead, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.Create")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":    "Create",
		"agency_id": agencyID,
		"owner_id":  ownerID,
	})

	source := models.LeadSourceManual
	if req.Source != "" {
		parsed, err := models.ParseLeadSource(req.Source)
		if err != nil {
			return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		source = parsed
	} else if req.BatchID != nil {
		source = models.LeadSourceBatch
	}

	now := time.Now().UTC()
	lead := &models.Lead{
		ID:        uuid.New().String(),
		AgencyID:  agencyID,
		OwnerID:   ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Age:       req.Age,
		State:     req.State,
		Status:    models.LeadStatusNew,
		Source:    source,
		Tag:       req.Tag,
		Notes:     req.Notes,
		BatchID:   req.BatchID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("leads")
	sb.Cols(leadColumns...)
	sb.Values(lead.ID, lead.AgencyID, lead.OwnerID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Age, lead.State, lead.Status, lead.Source, lead.Tag, lead.Notes, lead.BatchID, lead.CreatedAt, lead.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to create lead")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create lead")
	}

	log.WithFields(map[string]any{"id": lead.ID}).Info("Created lead")
	return lead, nil
}

// Get retrieves a lead by ID within the owner's scope.
func (r *Repository) Get(ctx context.Context, agencyID, ownerID, id string) (*models.Lead, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(leadColumns...)
	sb.From("leads")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("owner_id", ownerID),
	)

	query, args := sb.Build()
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("lead %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get lead")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get lead")
	}

	return &lead, nil
}

// ListFilter narrows the lead list.
type ListFilter struct {
	Status *models.LeadStatus
	Source *models.LeadSource
	Tag    *string
	Search *string
}

// List retrieves a page of the owner's leads with their latest call time.
func (r *Repository) List(ctx context.Context, agencyID, ownerID string, filter ListFilter, page, pageSize int) ([]models.LeadListItem, int, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	buildWhere := func(sb *sqlbuilder.SelectBuilder) []string {
		where := []string{
			sb.Equal("agency_id", agencyID),
			sb.Equal("owner_id", ownerID),
		}
		if filter.Status != nil {
			where = append(where, sb.Equal("status", *filter.Status))
		}
		if filter.Source != nil {
			where = append(where, sb.Equal("source", *filter.Source))
		}
		if filter.Tag != nil {
			where = append(where, sb.Equal("tag", *filter.Tag))
		}
		if filter.Search != nil {
			pattern := "%" + *filter.Search + "%"
			where = append(where, fmt.Sprintf("(first_name ILIKE %s OR last_name ILIKE %s OR phone ILIKE %s)",
				sb.Var(pattern), sb.Var(pattern), sb.Var(pattern)))
		}
		return where
	}

	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From("leads")
	countSb.Where(buildWhere(countSb)...)

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count leads")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count leads")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"id", "first_name", "last_name", "email", "phone", "status", "source", "tag", "created_at",
		"(SELECT MAX(a.created_at) FROM lead_activities a WHERE a.lead_id = leads.id) AS last_contact",
	)
	sb.From("leads")
	sb.Where(buildWhere(sb)...)
	sb.OrderBy("created_at DESC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var leads []models.LeadListItem
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list leads")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list leads")
	}

	return leads, totalCount, nil
}

// DialReady returns the owner's callable leads: status NEW or CONTACTED with
// no call activity inside the cooldown window. NEW leads come first, then
// oldest created, then fewest activities, capped at limit.
func (r *Repository) DialReady(ctx context.Context, agencyID, ownerID string, cooldown time.Duration, limit int) ([]models.DialReadyLead, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.DialReady")
	defer span.End()

	cutoff := time.Now().UTC().Add(-cooldown)

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "first_name", "last_name", "email", "phone", "age", "state", "status", "source", "notes", "tag", "created_at")
	sb.From("leads")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("owner_id", ownerID),
		sb.In("status", models.LeadStatusNew, models.LeadStatusContacted),
		fmt.Sprintf("NOT EXISTS (SELECT 1 FROM lead_activities a WHERE a.lead_id = leads.id AND a.type = 'call' AND a.created_at > %s)", sb.Var(cutoff)),
	)
	sb.OrderBy(
		fmt.Sprintf("(status = %s) DESC", sb.Var(models.LeadStatusNew)),
		"created_at ASC",
		"(SELECT COUNT(*) FROM lead_activities a WHERE a.lead_id = leads.id) ASC",
	)
	sb.Limit(limit)

	query, args := sb.Build()
	var leads []models.DialReadyLead
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to select dial-ready leads")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to select dial-ready leads")
	}

	return leads, nil
}

// Update applies partial edits to a lead.
func (r *Repository) Update(ctx context.Context, agencyID, ownerID, id string, req models.UpdateLeadRequest) (*models.Lead, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.Update")
	defer span.End()

	existing, err := r.Get(ctx, agencyID, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Age != nil {
		existing.Age = req.Age
	}
	if req.State != nil {
		existing.State = req.State
	}
	if req.Tag != nil {
		existing.Tag = req.Tag
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	existing.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("leads")
	sb.Set(
		sb.Assign("first_name", existing.FirstName),
		sb.Assign("last_name", existing.LastName),
		sb.Assign("email", existing.Email),
		sb.Assign("phone", existing.Phone),
		sb.Assign("age", existing.Age),
		sb.Assign("state", existing.State),
		sb.Assign("tag", existing.Tag),
		sb.Assign("notes", existing.Notes),
		sb.Assign("updated_at", existing.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("owner_id", ownerID),
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update lead")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update lead")
	}

	return existing, nil
}

// UpdateStatus moves a lead to status. It participates in the context
// transaction when one is open.
func (r *Repository) UpdateStatus(ctx context.Context, agencyID, ownerID, id string, status models.LeadStatus) error {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.UpdateStatus")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("leads")
	sb.Set(
		sb.Assign("status", status),
		sb.Assign("updated_at", time.Now().UTC()),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("owner_id", ownerID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update lead status")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update lead status")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("lead %s not found", id))
	}

	return nil
}

// Delete retires a lead. Leads are never removed; they move to DEAD so batch
// and dashboard history stays intact.
func (r *Repository) Delete(ctx context.Context, agencyID, ownerID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.Delete")
	defer span.End()

	if err := r.UpdateStatus(ctx, agencyID, ownerID, id, models.LeadStatusDead); err != nil {
		return err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted lead")
	return nil
}

// StatusCounts holds an owner's lead tallies for the dashboard cards.
type StatusCounts struct {
	Total     int `db:"total"`
	Contacted int `db:"contacted"`
	Set       int `db:"set_count"`
	Closed    int `db:"closed"`
}

// CountByOwner tallies an owner's leads by lifecycle stage.
func (r *Repository) CountByOwner(ctx context.Context, agencyID, ownerID string) (StatusCounts, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.CountByOwner")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE status IN ('CONTACTED', 'SET', 'SAT', 'CLOSED')) AS contacted",
		"COUNT(*) FILTER (WHERE status IN ('SET', 'SAT')) AS set_count",
		"COUNT(*) FILTER (WHERE status = 'CLOSED') AS closed",
	)
	sb.From("leads")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("owner_id", ownerID),
	)

	query, args := sb.Build()
	var counts StatusCounts
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count leads by owner")
		return StatusCounts{}, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count leads by owner")
	}

	return counts, nil
}

// CountByBatch tallies lead outcomes for every batch in the agency.
func (r *Repository) CountByBatch(ctx context.Context, agencyID string) (map[string]models.BatchLeadCounts, error) {
	ctx, span := tracing.StartSpan(ctx, "lead.Repository.CountByBatch")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"batch_id",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE status IN ('CONTACTED', 'SET', 'SAT', 'CLOSED')) AS contacted",
		"COUNT(*) FILTER (WHERE status = 'CLOSED') AS closed",
	)
	sb.From("leads")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.IsNotNull("batch_id"),
	)
	sb.GroupBy("batch_id")

	query, args := sb.Build()
	var counts []models.BatchLeadCounts
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count batch leads")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count batch leads")
	}

	byBatch := make(map[string]models.BatchLeadCounts, len(counts))
	for _, c := range counts {
		byBatch[c.BatchID] = c
	}
	return byBatch, nil
}
