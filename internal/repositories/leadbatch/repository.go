package leadbatch

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

var batchColumns = []string{
	"id", "agency_id", "owner_id", "name", "vendor", "vendor_type",
	"cost", "size", "purchase_date", "created_at",
}

// Repository handles lead batch persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create registers a purchased batch.
func (r *Repository) Create(ctx context.Context, agencyID, ownerID string, req models.CreateLeadBatchRequest) (*models.LeadBatch, error) {
	ctx, span := tracing.StartSpan(ctx, "leadbatch.Repository.Create")
	defer span.End()

	vendorType := models.VendorTypeThirdParty
	if req.VendorType == string(models.VendorTypeInHouse) {
		vendorType = models.VendorTypeInHouse
	}

	now := time.Now().UTC()
	batch := &models.LeadBatch{
		ID:           uuid.New().String(),
		AgencyID:     agencyID,
		OwnerID:      ownerID,
		Name:         req.Name,
		Vendor:       req.Vendor,
		VendorType:   vendorType,
		Cost:         req.Cost,
		Size:         req.Size,
		PurchaseDate: now,
		CreatedAt:    now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("lead_batches")
	sb.Cols(batchColumns...)
	sb.Values(batch.ID, batch.AgencyID, batch.OwnerID, batch.Name, batch.Vendor, batch.VendorType,
		batch.Cost, batch.Size, batch.PurchaseDate, batch.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create lead batch")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create lead batch")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": batch.ID, "name": batch.Name}).Info("Created lead batch")
	return batch, nil
}

// Get retrieves a batch by ID.
func (r *Repository) Get(ctx context.Context, agencyID, id string) (*models.LeadBatch, error) {
	ctx, span := tracing.StartSpan(ctx, "leadbatch.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(batchColumns...)
	sb.From("lead_batches")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
	)

	query, args := sb.Build()
	var batch models.LeadBatch
	if err := r.db.GetContext(ctx, &batch, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("lead batch %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get lead batch")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get lead batch")
	}

	return &batch, nil
}

// List retrieves an agency's batches, newest purchase first.
func (r *Repository) List(ctx context.Context, agencyID string) ([]models.LeadBatch, error) {
	ctx, span := tracing.StartSpan(ctx, "leadbatch.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(batchColumns...)
	sb.From("lead_batches")
	sb.Where(sb.Equal("agency_id", agencyID))
	sb.OrderBy("purchase_date DESC")

	query, args := sb.Build()
	var batches []models.LeadBatch
	if err := r.db.SelectContext(ctx, &batches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list lead batches")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list lead batches")
	}

	return batches, nil
}

// Delete removes a batch record. Leads imported from it keep their batch_id.
func (r *Repository) Delete(ctx context.Context, agencyID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "leadbatch.Repository.Delete")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	sb.DeleteFrom("lead_batches")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete lead batch")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete lead batch")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("lead batch %s not found", id))
	}

	return nil
}
