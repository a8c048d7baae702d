package client

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

var clientColumns = []string{
	"id", "agency_id", "agent_id", "lead_id", "first_name", "last_name", "email", "phone", "created_at", "updated_at",
}

var policyColumns = []string{
	"id", "client_id", "agency_id", "carrier", "product_type", "face_amount", "premium", "status", "issue_date", "created_at",
}

// Repository handles client and policy persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create inserts a client, typically converted from a closed lead.
func (r *Repository) Create(ctx context.Context, agencyID, agentID string, req models.CreateClientRequest) (*models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "client.Repository.Create")
	defer span.End()

	now := time.Now().UTC()
	client := &models.Client{
		ID:        uuid.New().String(),
		AgencyID:  agencyID,
		AgentID:   agentID,
		LeadID:    req.LeadID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("clients")
	sb.Cols(clientColumns...)
	sb.Values(client.ID, client.AgencyID, client.AgentID, client.LeadID, client.FirstName, client.LastName,
		client.Email, client.Phone, client.CreatedAt, client.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create client")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create client")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": client.ID}).Info("Created client")
	return client, nil
}

// Get retrieves a client with their policies and summed premium.
func (r *Repository) Get(ctx context.Context, agencyID, agentID, id string) (*models.ClientSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "client.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(clientColumns...)
	sb.From("clients")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("agent_id", agentID),
	)

	query, args := sb.Build()
	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("client %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get client")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get client")
	}

	policies, err := r.ListPolicies(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}

	summary := &models.ClientSummary{Client: client, Policies: policies}
	for _, p := range policies {
		summary.TotalPremium += p.Premium
	}
	return summary, nil
}

// List retrieves an agent's clients, newest first.
func (r *Repository) List(ctx context.Context, agencyID, agentID string) ([]models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "client.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(clientColumns...)
	sb.From("clients")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("agent_id", agentID),
	)
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var clients []models.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list clients")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list clients")
	}

	return clients, nil
}

// AddPolicy writes a policy for a client.
func (r *Repository) AddPolicy(ctx context.Context, agencyID, clientID string, policy models.Policy) (*models.Policy, error) {
	ctx, span := tracing.StartSpan(ctx, "client.Repository.AddPolicy")
	defer span.End()

	policy.ID = uuid.New().String()
	policy.ClientID = clientID
	policy.AgencyID = agencyID
	policy.CreatedAt = time.Now().UTC()
	if policy.Status == "" {
		policy.Status = "ACTIVE"
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("policies")
	sb.Cols(policyColumns...)
	sb.Values(policy.ID, policy.ClientID, policy.AgencyID, policy.Carrier, policy.ProductType,
		policy.FaceAmount, policy.Premium, policy.Status, policy.IssueDate, policy.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to add policy")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add policy")
	}

	return &policy, nil
}

// ListPolicies returns a client's policies, newest first.
func (r *Repository) ListPolicies(ctx context.Context, agencyID, clientID string) ([]models.Policy, error) {
	ctx, span := tracing.StartSpan(ctx, "client.Repository.ListPolicies")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(policyColumns...)
	sb.From("policies")
	sb.Where(
		sb.Equal("agency_id", agencyID),
		sb.Equal("client_id", clientID),
	)
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var policies []models.Policy
	if err := r.db.SelectContext(ctx, &policies, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list policies")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list policies")
	}

	return policies, nil
}
