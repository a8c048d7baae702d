package dialing

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) IsOpen() bool { return !t.committed && !t.rolledBack }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

func (t *fakeTx) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

type fakeDB struct {
	database.DB
	tx *fakeTx
}

func (db *fakeDB) GetTx(ctx context.Context, opts *sql.TxOptions) (context.Context, database.Tx, error) {
	return ctx, db.tx, nil
}

func (db *fakeDB) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, errors.New("not supported")
}

type fakeLeadStore struct {
	lead         *models.Lead
	getErr       error
	updateErr    error
	updatedTo    *models.LeadStatus
	updateCalled bool
}

func (s *fakeLeadStore) Get(ctx context.Context, agencyID, ownerID, id string) (*models.Lead, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.lead, nil
}

func (s *fakeLeadStore) UpdateStatus(ctx context.Context, agencyID, ownerID, id string, status models.LeadStatus) error {
	s.updateCalled = true
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedTo = &status
	return nil
}

type fakeActivityStore struct {
	appended    []models.LeadActivity
	appendErr   error
	description string
}

func (s *fakeActivityStore) Append(ctx context.Context, agencyID, leadID, userID string, activityType models.ActivityType, description string) (*models.LeadActivity, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	s.description = description
	activity := models.LeadActivity{
		ID:          "activity-1",
		LeadID:      leadID,
		AgencyID:    agencyID,
		Type:        activityType,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	s.appended = append(s.appended, activity)
	return &activity, nil
}

type fakeAppointmentStore struct {
	created *models.Appointment
}

func (s *fakeAppointmentStore) Create(ctx context.Context, agencyID, userID string, leadID *string, title string, start time.Time) (*models.Appointment, error) {
	s.created = &models.Appointment{
		ID:        "appt-1",
		AgencyID:  agencyID,
		UserID:    userID,
		LeadID:    leadID,
		Title:     title,
		StartTime: start.UTC(),
		EndTime:   start.UTC().Add(models.AppointmentDuration),
		CreatedAt: time.Now().UTC(),
	}
	return s.created, nil
}

type fakeTaskStore struct {
	created *models.Task
}

func (s *fakeTaskStore) Create(ctx context.Context, agencyID, createdByID, assignedToID, title string, description *string, priority models.TaskPriority, dueDate *time.Time) (*models.Task, error) {
	s.created = &models.Task{
		ID:           "task-1",
		AgencyID:     agencyID,
		Title:        title,
		Description:  description,
		Priority:     priority,
		Status:       models.TaskStatusPending,
		DueDate:      dueDate,
		CreatedByID:  createdByID,
		AssignedToID: assignedToID,
	}
	return s.created, nil
}

type resolverHarness struct {
	resolver     *Resolver
	tx           *fakeTx
	leads        *fakeLeadStore
	activities   *fakeActivityStore
	appointments *fakeAppointmentStore
	tasks        *fakeTaskStore
}

func newResolverHarness(lead *models.Lead) *resolverHarness {
	h := &resolverHarness{
		tx:           &fakeTx{},
		leads:        &fakeLeadStore{lead: lead},
		activities:   &fakeActivityStore{},
		appointments: &fakeAppointmentStore{},
		tasks:        &fakeTaskStore{},
	}
	h.resolver = NewResolver(&fakeDB{tx: h.tx}, h.leads, h.activities, h.appointments, h.tasks, nil, ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	return h
}

func testLead() *models.Lead {
	return &models.Lead{
		ID:        "lead-1",
		AgencyID:  "agency-1",
		OwnerID:   "agent-1",
		FirstName: "Ada",
		LastName:  "Morris",
		Phone:     "555-0100",
		Status:    models.LeadStatusNew,
	}
}

func TestResolverStatusTransitions(t *testing.T) {
	tests := []struct {
		disposition string
		want        models.LeadStatus
	}{
		{"NO_ANSWER", models.LeadStatusContacted},
		{"NOT_INTERESTED", models.LeadStatusDead},
		{"CALLBACK", models.LeadStatusContacted},
		{"SET", models.LeadStatusSet},
		{"SAT", models.LeadStatusSat},
		{"SALE", models.LeadStatusClosed},
		{"DEAD", models.LeadStatusDead},
	}

	for _, tt := range tests {
		t.Run(tt.disposition, func(t *testing.T) {
			h := newResolverHarness(testLead())

			result, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
				Disposition: tt.disposition,
			})
			require.NoError(t, err)

			require.NotNil(t, h.leads.updatedTo)
			assert.Equal(t, tt.want, *h.leads.updatedTo)
			assert.Equal(t, tt.want, result.Lead.Status)
			assert.True(t, h.tx.committed)
			assert.False(t, h.tx.rolledBack)
		})
	}
}

func TestResolverLogsStatusChangeActivity(t *testing.T) {
	h := newResolverHarness(testLead())
	notes := "left voicemail"

	result, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition: "NO_ANSWER",
		Notes:       &notes,
	})
	require.NoError(t, err)

	require.Len(t, h.activities.appended, 1)
	assert.Equal(t, models.ActivityTypeStatusChange, h.activities.appended[0].Type)
	assert.Contains(t, h.activities.description, "NO_ANSWER")
	assert.Contains(t, h.activities.description, notes)
	assert.NotNil(t, result.Activity)
}

func TestResolverBooksAppointmentOnSet(t *testing.T) {
	h := newResolverHarness(testLead())
	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	result, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition:     "SET",
		AppointmentDate: &start,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Appointment)
	assert.Equal(t, start, result.Appointment.StartTime)
	assert.Equal(t, start.Add(time.Hour), result.Appointment.EndTime)
	assert.Contains(t, result.Appointment.Title, "Ada Morris")
	require.NotNil(t, result.Appointment.LeadID)
	assert.Equal(t, "lead-1", *result.Appointment.LeadID)
	assert.Nil(t, result.Task)

	require.NotNil(t, result.Activity)
	assert.Equal(t, models.ActivityTypeStatusChange, result.Activity.Type)
}

func TestResolverSkipsAppointmentWithoutDate(t *testing.T) {
	h := newResolverHarness(testLead())

	result, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition: "SET",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Appointment)
	assert.Nil(t, h.appointments.created)
	require.NotNil(t, h.leads.updatedTo)
	assert.Equal(t, models.LeadStatusSet, *h.leads.updatedTo)
}

func TestResolverCreatesCallbackTask(t *testing.T) {
	h := newResolverHarness(testLead())
	due := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	result, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition:  "CALLBACK",
		CallbackDate: &due,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Task)
	assert.Equal(t, "Call back Ada Morris", result.Task.Title)
	require.NotNil(t, result.Task.Description)
	assert.Equal(t, "Scheduled callback from lead disposition", *result.Task.Description)
	assert.Equal(t, models.TaskPriorityMedium, result.Task.Priority)
	assert.Equal(t, models.TaskStatusPending, result.Task.Status)
	assert.Equal(t, "agent-1", result.Task.AssignedToID)
	require.NotNil(t, result.Task.DueDate)
	assert.Equal(t, due, *result.Task.DueDate)
	assert.Nil(t, result.Appointment)
}

func TestResolverSkipsTaskWithoutCallbackDate(t *testing.T) {
	h := newResolverHarness(testLead())

	result, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition: "CALLBACK",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Task)
	assert.Nil(t, h.tasks.created)
}

func TestResolverRejectsUnknownDisposition(t *testing.T) {
	h := newResolverHarness(testLead())

	_, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition: "WRONG_NUMBER",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	assert.False(t, h.leads.updateCalled)
	assert.Empty(t, h.activities.appended)
}

func TestResolverMasksUnownedLeadAsNotFound(t *testing.T) {
	h := newResolverHarness(nil)
	h.leads.getErr = httperror.NewHTTPError(http.StatusNotFound, "lead lead-1 not found")

	_, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-2", "lead-1", models.DispositionRequest{
		Disposition: "SALE",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
	assert.False(t, h.leads.updateCalled)
	assert.Empty(t, h.activities.appended)
	assert.False(t, h.tx.committed)
}

func TestResolverRollsBackOnWriteFailure(t *testing.T) {
	h := newResolverHarness(testLead())
	h.activities.appendErr = httperror.NewHTTPError(http.StatusInternalServerError, "failed to append lead activity")

	_, err := h.resolver.Resolve(context.Background(), "agency-1", "agent-1", "lead-1", models.DispositionRequest{
		Disposition: "SALE",
	})
	require.Error(t, err)
	assert.False(t, h.tx.committed)
	assert.True(t, h.tx.rolledBack)
}
