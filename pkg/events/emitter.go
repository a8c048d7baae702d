// Package events handles event emission for lead lifecycle changes
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Emitter publishes lead lifecycle events to the output topic. Downstream
// consumers (reporting, vendor feedback loops) key off event_type.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitLeadCreated emits a lead.created event
func (e *Emitter) EmitLeadCreated(ctx context.Context, lead *models.Lead) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitLeadCreated")
	defer span.End()

	data, _ := json.Marshal(lead)
	event := &kafka.LeadEvent{
		EventType: "lead.created",
		AgencyID:  lead.AgencyID,
		LeadID:    lead.ID,
		OwnerID:   lead.OwnerID,
		Status:    string(lead.Status),
		Data:      data,
	}

	if err := e.producer.PublishLeadEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit lead.created event")
		return err
	}

	return nil
}

// EmitLeadUpdated emits a lead.updated event
func (e *Emitter) EmitLeadUpdated(ctx context.Context, lead *models.Lead) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitLeadUpdated")
	defer span.End()

	data, _ := json.Marshal(lead)
	event := &kafka.LeadEvent{
		EventType: "lead.updated",
		AgencyID:  lead.AgencyID,
		LeadID:    lead.ID,
		OwnerID:   lead.OwnerID,
		Status:    string(lead.Status),
		Data:      data,
	}

	if err := e.producer.PublishLeadEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit lead.updated event")
		return err
	}

	return nil
}

// EmitLeadDeleted emits a lead.deleted event
func (e *Emitter) EmitLeadDeleted(ctx context.Context, agencyID, leadID, ownerID string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitLeadDeleted")
	defer span.End()

	event := &kafka.LeadEvent{
		EventType: "lead.deleted",
		AgencyID:  agencyID,
		LeadID:    leadID,
		OwnerID:   ownerID,
		Status:    string(models.LeadStatusDead),
	}

	if err := e.producer.PublishLeadEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit lead.deleted event")
		return err
	}

	return nil
}

// EmitDispositionResolved emits a lead.disposition event after a call outcome
// has been applied.
func (e *Emitter) EmitDispositionResolved(ctx context.Context, agencyID, leadID, ownerID string, disposition models.Disposition, status models.LeadStatus) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitDispositionResolved")
	defer span.End()

	event := &kafka.LeadEvent{
		EventType:   "lead.disposition",
		AgencyID:    agencyID,
		LeadID:      leadID,
		OwnerID:     ownerID,
		Status:      string(status),
		Disposition: string(disposition),
	}

	if err := e.producer.PublishLeadEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit lead.disposition event")
		return err
	}

	return nil
}
