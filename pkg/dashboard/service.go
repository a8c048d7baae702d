// Package dashboard assembles the stats views for agents, managers, and the
// founder console.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/internal/repositories/lead"
	"github.com/Ramsey-B/clover/internal/repositories/leadactivity"
	"github.com/Ramsey-B/clover/internal/repositories/team"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/redis"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// TeamView is the manager dashboard payload.
type TeamView struct {
	Stats   models.TeamStats    `json:"stats"`
	Members []models.TeamMember `json:"members"`
}

// FounderView is the founder console payload.
type FounderView struct {
	Stats    models.FounderStats     `json:"stats"`
	Agencies []models.AgencyOverview `json:"agencies"`
}

// Service computes dashboard aggregates. Agent stats are cached briefly so
// card refreshes do not hammer the aggregate queries; cache may be nil.
type Service struct {
	leads      *lead.Repository
	activities *leadactivity.Repository
	team       *team.Repository
	cache      *redis.Cache
	logger     ectologger.Logger
}

// NewService creates a dashboard service. cache may be nil to disable caching.
func NewService(leads *lead.Repository, activities *leadactivity.Repository, teamRepo *team.Repository, cache *redis.Cache, logger ectologger.Logger) *Service {
	return &Service{
		leads:      leads,
		activities: activities,
		team:       teamRepo,
		cache:      cache,
		logger:     logger,
	}
}

// AgentStats returns the agent's summary cards: lead funnel counts and
// trailing production.
func (s *Service) AgentStats(ctx context.Context, agencyID, userID string) (*models.DashboardStats, error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.Service.AgentStats")
	defer span.End()

	cacheKey := fmt.Sprintf("stats:%s:%s", agencyID, userID)
	if s.cache != nil {
		var cached models.DashboardStats
		err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			metrics.StatsCacheHits.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.WithContext(ctx).WithError(err).Warn("Stats cache lookup failed")
		}
		metrics.StatsCacheHits.WithLabelValues("miss").Inc()
	}

	counts, err := s.leads.CountByOwner(ctx, agencyID, userID)
	if err != nil {
		return nil, err
	}

	weeklyAP, monthlyAP, err := s.team.MemberProduction(ctx, agencyID, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalLeads:      counts.Total,
		ContactedLeads:  counts.Contacted,
		SetAppointments: counts.Set,
		ClosedDeals:     counts.Closed,
		WeeklyAP:        weeklyAP,
		MonthlyAP:       monthlyAP,
	}
	if counts.Total > 0 {
		stats.ConversionRate = float64(counts.Closed) / float64(counts.Total) * 100
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, stats); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Failed to cache stats")
		}
	}

	return stats, nil
}

// AgentDaily returns the agent's activity tallies since midnight UTC.
func (s *Service) AgentDaily(ctx context.Context, agencyID, userID string) (*models.DailyMetrics, error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.Service.AgentDaily")
	defer span.End()

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	calls, err := s.activities.CountCallsByOutcomeSince(ctx, agencyID, userID, midnight)
	if err != nil {
		return nil, err
	}

	applications, err := s.activities.CountByUserSince(ctx, agencyID, userID, models.ActivityTypeApplication, midnight)
	if err != nil {
		return nil, err
	}

	return &models.DailyMetrics{
		Dials:           calls.Dials,
		Contacts:        calls.Dials - calls.NoAnswer,
		AppointmentsSet: calls.Set,
		AppointmentsSat: calls.Sat,
		Applications:    applications,
	}, nil
}

// TeamStats returns the manager rollup with a row per agent.
func (s *Service) TeamStats(ctx context.Context, agencyID string) (*TeamView, error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.Service.TeamStats")
	defer span.End()

	members, err := s.team.ListMembers(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	view := &TeamView{Members: members}
	view.Stats.TotalMembers = len(members)
	for _, m := range members {
		if m.Role.IsProducing() {
			view.Stats.ActiveMembers++
		}
		view.Stats.WeeklyAP += m.WeeklyAP
		view.Stats.MonthlyAP += m.MonthlyAP
		view.Stats.TotalApps += m.TotalApps
	}

	return view, nil
}

// FounderStats returns the platform-wide rollup with a row per agency.
func (s *Service) FounderStats(ctx context.Context) (*FounderView, error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.Service.FounderStats")
	defer span.End()

	agencies, err := s.team.ListAgencies(ctx)
	if err != nil {
		return nil, err
	}

	recruits, err := s.team.CountActiveRecruits(ctx)
	if err != nil {
		return nil, err
	}

	view := &FounderView{Agencies: agencies}
	view.Stats.TotalAgencies = len(agencies)
	view.Stats.ActiveRecruits = recruits
	for _, a := range agencies {
		view.Stats.TotalAgents += a.TotalAgents
		view.Stats.TotalWeeklyAP += a.WeeklyAP
		view.Stats.TotalMonthlyAP += a.MonthlyAP
	}

	return view, nil
}
