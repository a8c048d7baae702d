// Package dialing implements the dial session workflow: picking which leads
// an agent should call next and applying the outcome of each call.
package dialing

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// dialReadyStore is the slice of the lead repository the selector needs.
type dialReadyStore interface {
	DialReady(ctx context.Context, agencyID, ownerID string, cooldown time.Duration, limit int) ([]models.DialReadyLead, error)
}

// SelectorConfig holds the dial-ready window settings.
type SelectorConfig struct {
	// Cooldown is how long a lead sits out after a call before it can be
	// surfaced again.
	Cooldown time.Duration
	// Limit caps the size of one dial session.
	Limit int
}

// Selector builds an agent's call queue. Only the agent's own NEW and
// CONTACTED leads are considered, and a lead called inside the cooldown
// window is held back.
type Selector struct {
	leads  dialReadyStore
	cfg    SelectorConfig
	logger ectologger.Logger
}

// NewSelector creates a dial-ready selector
func NewSelector(leads dialReadyStore, cfg SelectorConfig, logger ectologger.Logger) *Selector {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 2 * time.Hour
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 50
	}
	return &Selector{
		leads:  leads,
		cfg:    cfg,
		logger: logger,
	}
}

// Select returns the agent's current call queue, NEW leads first, then oldest
// created, then fewest prior touches.
func (s *Selector) Select(ctx context.Context, agencyID, ownerID string) ([]models.DialReadyLead, error) {
	ctx, span := tracing.StartSpan(ctx, "dialing.Selector.Select")
	defer span.End()

	leads, err := s.leads.DialReady(ctx, agencyID, ownerID, s.cfg.Cooldown, s.cfg.Limit)
	if err != nil {
		return nil, err
	}

	metrics.DialReadyLeadsReturned.Observe(float64(len(leads)))

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"agency_id": agencyID,
		"owner_id":  ownerID,
		"count":     len(leads),
	}).Debug("Built dial-ready queue")

	if leads == nil {
		leads = []models.DialReadyLead{}
	}
	return leads, nil
}
