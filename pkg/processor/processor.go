// Package processor turns lead import messages into CRM leads.
package processor

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

type leadCreator interface {
	Create(ctx context.Context, agencyID, ownerID string, req models.CreateLeadRequest) (*models.Lead, error)
}

type leadEmitter interface {
	EmitLeadCreated(ctx context.Context, lead *models.Lead) error
}

// Processor consumes vendor import batches from the import topic and loads
// them as NEW leads for the receiving agent.
type Processor struct {
	leads   leadCreator
	emitter leadEmitter
	logger  ectologger.Logger
}

// NewProcessor creates a lead import processor. emitter may be nil when event
// publishing is disabled.
func NewProcessor(leads leadCreator, emitter leadEmitter, logger ectologger.Logger) *Processor {
	return &Processor{
		leads:   leads,
		emitter: emitter,
		logger:  logger,
	}
}

// HandleMessage processes one import message. Rows that fail to insert are
// logged and skipped so one bad row does not wedge the batch; the message is
// only retried when every row failed.
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.HandleMessage")
	defer span.End()

	if msg.ImportMessage == nil {
		return nil
	}
	batch := msg.ImportMessage

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"agency_id": batch.AgencyID,
		"owner_id":  batch.OwnerID,
		"leads":     len(batch.Leads),
	})

	created := 0
	for _, row := range batch.Leads {
		req := models.CreateLeadRequest{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			Age:       row.Age,
			State:     row.State,
			Tag:       row.Tag,
			Source:    string(models.LeadSourceBatch),
			BatchID:   batch.BatchID,
		}

		lead, err := p.leads.Create(ctx, batch.AgencyID, batch.OwnerID, req)
		if err != nil {
			metrics.LeadImportsTotal.WithLabelValues(batch.AgencyID, "failed").Inc()
			log.WithError(err).WithFields(map[string]any{"phone": row.Phone}).Error("Failed to import lead")
			continue
		}

		created++
		metrics.LeadImportsTotal.WithLabelValues(batch.AgencyID, "created").Inc()

		if p.emitter != nil {
			if err := p.emitter.EmitLeadCreated(ctx, lead); err != nil {
				log.WithError(err).Warn("Failed to emit lead.created for imported lead")
			}
		}
	}

	if created == 0 && len(batch.Leads) > 0 {
		log.Error("Import batch produced no leads")
		return ErrBatchFailed
	}

	log.WithFields(map[string]any{"created": created}).Info("Imported lead batch")
	return nil
}
