package team

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const (
	weeklyWindow  = 7 * 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
)

// memberRow is the scan target for team member aggregates.
type memberRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Email     string  `db:"email"`
	Role      string  `db:"role"`
	WeeklyAP  float64 `db:"weekly_ap"`
	MonthlyAP float64 `db:"monthly_ap"`
	TotalApps int     `db:"total_apps"`
}

// agencyRow is the scan target for founder agency aggregates.
type agencyRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	TotalAgents int       `db:"total_agents"`
	WeeklyAP    float64   `db:"weekly_ap"`
	MonthlyAP   float64   `db:"monthly_ap"`
	CreatedAt   time.Time `db:"created_at"`
}

// Repository aggregates production across agents and agencies. Weekly and
// monthly AP are summed from policies written inside real trailing windows.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func productionSelect(sb *sqlbuilder.SelectBuilder, agentRef string, since time.Time, alias string) string {
	return fmt.Sprintf(
		"(SELECT COALESCE(SUM(p.premium), 0) FROM policies p JOIN clients c ON c.id = p.client_id WHERE c.agent_id = %s AND p.created_at >= %s) AS %s",
		agentRef, sb.Var(since), alias,
	)
}

// ListMembers returns every agent in the agency with their trailing production.
func (r *Repository) ListMembers(ctx context.Context, agencyID string) ([]models.TeamMember, error) {
	ctx, span := tracing.StartSpan(ctx, "team.Repository.ListMembers")
	defer span.End()

	now := time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"id", "name", "email", "role", "total_apps",
		productionSelect(sb, "agents.id", now.Add(-weeklyWindow), "weekly_ap"),
		productionSelect(sb, "agents.id", now.Add(-monthlyWindow), "monthly_ap"),
	)
	sb.From("agents")
	sb.Where(sb.Equal("agency_id", agencyID))
	sb.OrderBy("name ASC")

	query, args := sb.Build()
	var rows []memberRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list team members")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list team members")
	}

	members := make([]models.TeamMember, 0, len(rows))
	for _, row := range rows {
		role, err := models.ParseRole(row.Role)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"agent_id": row.ID}).Warn("Skipping agent with unknown role")
			continue
		}
		members = append(members, models.TeamMember{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Role:      role,
			WeeklyAP:  row.WeeklyAP,
			MonthlyAP: row.MonthlyAP,
			TotalApps: row.TotalApps,
		})
	}

	return members, nil
}

// MemberProduction returns one agent's trailing weekly and monthly AP.
func (r *Repository) MemberProduction(ctx context.Context, agencyID, userID string) (weeklyAP, monthlyAP float64, err error) {
	ctx, span := tracing.StartSpan(ctx, "team.Repository.MemberProduction")
	defer span.End()

	now := time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		productionSelect(sb, sb.Var(userID), now.Add(-weeklyWindow), "weekly_ap"),
		productionSelect(sb, sb.Var(userID), now.Add(-monthlyWindow), "monthly_ap"),
	)

	query, args := sb.Build()
	var row struct {
		WeeklyAP  float64 `db:"weekly_ap"`
		MonthlyAP float64 `db:"monthly_ap"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get member production")
		return 0, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get member production")
	}

	_ = agencyID // production is attributed through clients, which are already agency scoped
	return row.WeeklyAP, row.MonthlyAP, nil
}

// ListAgencies returns every agency with its agent count and trailing
// production, for the founder view.
func (r *Repository) ListAgencies(ctx context.Context) ([]models.AgencyOverview, error) {
	ctx, span := tracing.StartSpan(ctx, "team.Repository.ListAgencies")
	defer span.End()

	now := time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"id", "name", "created_at",
		"(SELECT COUNT(*) FROM agents a WHERE a.agency_id = agencies.id) AS total_agents",
		fmt.Sprintf("(SELECT COALESCE(SUM(p.premium), 0) FROM policies p WHERE p.agency_id = agencies.id AND p.created_at >= %s) AS weekly_ap", sb.Var(now.Add(-weeklyWindow))),
		fmt.Sprintf("(SELECT COALESCE(SUM(p.premium), 0) FROM policies p WHERE p.agency_id = agencies.id AND p.created_at >= %s) AS monthly_ap", sb.Var(now.Add(-monthlyWindow))),
	)
	sb.From("agencies")
	sb.OrderBy("created_at ASC")

	query, args := sb.Build()
	var rows []agencyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list agencies")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list agencies")
	}

	agencies := make([]models.AgencyOverview, 0, len(rows))
	for _, row := range rows {
		agencies = append(agencies, models.AgencyOverview{
			ID:          row.ID,
			Name:        row.Name,
			TotalAgents: row.TotalAgents,
			WeeklyAP:    row.WeeklyAP,
			MonthlyAP:   row.MonthlyAP,
			CreatedAt:   row.CreatedAt,
		})
	}

	return agencies, nil
}

// CountActiveRecruits tallies recruits still in the onboarding pipeline across
// all agencies.
func (r *Repository) CountActiveRecruits(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "team.Repository.CountActiveRecruits")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("recruit_profiles")
	sb.Where(sb.NotEqual("status", models.RecruitStatusActivated))

	query, args := sb.Build()
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count active recruits")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count active recruits")
	}

	return count, nil
}
