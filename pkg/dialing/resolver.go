package dialing

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// The resolver depends on narrow slices of the repositories so the transition
// logic can be tested against fakes.

type leadStore interface {
	Get(ctx context.Context, agencyID, ownerID, id string) (*models.Lead, error)
	UpdateStatus(ctx context.Context, agencyID, ownerID, id string, status models.LeadStatus) error
}

type activityStore interface {
	Append(ctx context.Context, agencyID, leadID, userID string, activityType models.ActivityType, description string) (*models.LeadActivity, error)
}

type appointmentStore interface {
	Create(ctx context.Context, agencyID, userID string, leadID *string, title string, start time.Time) (*models.Appointment, error)
}

type taskStore interface {
	Create(ctx context.Context, agencyID, createdByID, assignedToID, title string, description *string, priority models.TaskPriority, dueDate *time.Time) (*models.Task, error)
}

type dispositionEmitter interface {
	EmitDispositionResolved(ctx context.Context, agencyID, leadID, ownerID string, disposition models.Disposition, status models.LeadStatus) error
}

// Result is everything a resolved disposition produced.
type Result struct {
	Lead        *models.Lead         `json:"lead"`
	Activity    *models.LeadActivity `json:"activity"`
	Appointment *models.Appointment  `json:"appointment,omitempty"`
	Task        *models.Task         `json:"task,omitempty"`
}

// Resolver applies a call outcome to a lead: the status move, the activity
// log entry, and any follow-up appointment or callback task, all in one
// transaction.
type Resolver struct {
	db           database.DB
	leads        leadStore
	activities   activityStore
	appointments appointmentStore
	tasks        taskStore
	emitter      dispositionEmitter
	logger       ectologger.Logger
}

// NewResolver creates a disposition resolver. emitter may be nil when event
// publishing is disabled.
func NewResolver(db database.DB, leads leadStore, activities activityStore, appointments appointmentStore, tasks taskStore, emitter dispositionEmitter, logger ectologger.Logger) *Resolver {
	return &Resolver{
		db:           db,
		leads:        leads,
		activities:   activities,
		appointments: appointments,
		tasks:        tasks,
		emitter:      emitter,
		logger:       logger,
	}
}

// Resolve records the outcome of a call on a lead the agent owns. A lead
// outside the agent's scope reports not found, never forbidden. Nothing is
// written unless every write succeeds.
func (r *Resolver) Resolve(ctx context.Context, agencyID, ownerID, leadID string, req models.DispositionRequest) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "dialing.Resolver.Resolve")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"agency_id":   agencyID,
		"owner_id":    ownerID,
		"lead_id":     leadID,
		"disposition": req.Disposition,
	})

	disposition, err := models.ParseDisposition(req.Disposition)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lead, err := r.leads.Get(ctx, agencyID, ownerID, leadID)
	if err != nil {
		return nil, err
	}

	nextStatus := disposition.NextStatus()

	ctxTx, tx, err := r.db.GetTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	// Roll back with the outer context so a failed resolve actually unwinds.
	defer tx.Rollback(ctx)

	if err := r.leads.UpdateStatus(ctxTx, agencyID, ownerID, leadID, nextStatus); err != nil {
		return nil, err
	}

	activity, err := r.activities.Append(ctxTx, agencyID, leadID, ownerID, models.ActivityTypeStatusChange, activityDescription(disposition, req.Notes))
	if err != nil {
		return nil, err
	}

	result := &Result{Activity: activity}

	if disposition == models.DispositionSet && req.AppointmentDate != nil {
		title := fmt.Sprintf("Appointment with %s %s", lead.FirstName, lead.LastName)
		appt, err := r.appointments.Create(ctxTx, agencyID, ownerID, &leadID, title, *req.AppointmentDate)
		if err != nil {
			return nil, err
		}
		result.Appointment = appt
	}

	if disposition == models.DispositionCallback && req.CallbackDate != nil {
		title := fmt.Sprintf("Call back %s %s", lead.FirstName, lead.LastName)
		description := "Scheduled callback from lead disposition"
		task, err := r.tasks.Create(ctxTx, agencyID, ownerID, ownerID, title, &description, models.TaskPriorityMedium, req.CallbackDate)
		if err != nil {
			return nil, err
		}
		result.Task = task
	}

	if err := tx.Commit(ctxTx); err != nil {
		log.WithError(err).Error("Failed to commit disposition")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to commit disposition")
	}

	lead.Status = nextStatus
	lead.UpdatedAt = time.Now().UTC()
	result.Lead = lead

	metrics.RecordDisposition(agencyID, string(disposition))

	if r.emitter != nil {
		// Event emission is best-effort once the disposition is durable.
		if err := r.emitter.EmitDispositionResolved(ctx, agencyID, leadID, ownerID, disposition, nextStatus); err != nil {
			log.WithError(err).Warn("Failed to emit disposition event")
		}
	}

	log.WithFields(map[string]any{"status": nextStatus}).Info("Resolved disposition")
	return result, nil
}

func activityDescription(disposition models.Disposition, notes *string) string {
	description := fmt.Sprintf("Call disposition: %s", disposition)
	if notes != nil && *notes != "" {
		description += " - " + *notes
	}
	return description
}
