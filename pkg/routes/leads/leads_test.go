package leads_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/dialing"
	"github.com/Ramsey-B/clover/pkg/middleware"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/routes/leads"
)

type stubDialStore struct {
	leads []models.DialReadyLead
}

func (s *stubDialStore) DialReady(ctx context.Context, agencyID, ownerID string, cooldown time.Duration, limit int) ([]models.DialReadyLead, error) {
	return s.leads, nil
}

type stubTx struct{}

func (t *stubTx) IsOpen() bool                     { return true }
func (t *stubTx) Commit(ctx context.Context) error { return nil }
func (t *stubTx) Rollback(ctx context.Context) error {
	return nil
}

func (t *stubTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (t *stubTx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

func (t *stubTx) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

type stubDB struct {
	database.DB
}

func (db *stubDB) GetTx(ctx context.Context, opts *sql.TxOptions) (context.Context, database.Tx, error) {
	return ctx, &stubTx{}, nil
}

type stubLeadStore struct {
	lead *models.Lead
}

func (s *stubLeadStore) Get(ctx context.Context, agencyID, ownerID, id string) (*models.Lead, error) {
	return s.lead, nil
}

func (s *stubLeadStore) UpdateStatus(ctx context.Context, agencyID, ownerID, id string, status models.LeadStatus) error {
	return nil
}

type stubActivityStore struct{}

func (s *stubActivityStore) Append(ctx context.Context, agencyID, leadID, userID string, activityType models.ActivityType, description string) (*models.LeadActivity, error) {
	return &models.LeadActivity{ID: "activity-1", LeadID: leadID, Type: activityType, Description: description}, nil
}

type stubAppointmentStore struct{}

func (s *stubAppointmentStore) Create(ctx context.Context, agencyID, userID string, leadID *string, title string, start time.Time) (*models.Appointment, error) {
	return &models.Appointment{ID: "appt-1", Title: title, StartTime: start}, nil
}

type stubTaskStore struct{}

func (s *stubTaskStore) Create(ctx context.Context, agencyID, createdByID, assignedToID, title string, description *string, priority models.TaskPriority, dueDate *time.Time) (*models.Task, error) {
	return &models.Task{ID: "task-1", Title: title, Priority: priority, Status: models.TaskStatusPending}, nil
}

func newDialServer(t *testing.T, queue []models.DialReadyLead, lead *models.Lead) *echo.Echo {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

	container := ectoinject.GetDefaultContainer()
	if container == nil {
		var err error
		container, err = ectoinject.NewDIDefaultContainer()
		require.NoError(t, err)
	}

	selector := dialing.NewSelector(&stubDialStore{leads: queue}, dialing.SelectorConfig{}, logger)
	require.NoError(t, ectoinject.RegisterInstance[*dialing.Selector](container, selector))

	resolver := dialing.NewResolver(&stubDB{}, &stubLeadStore{lead: lead}, &stubActivityStore{}, &stubAppointmentStore{}, &stubTaskStore{}, nil, logger)
	require.NoError(t, ectoinject.RegisterInstance[*dialing.Resolver](container, resolver))

	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Context())
	e.Use(middleware.TestAuth())
	leads.Register(e.Group("/leads"))
	return e
}

func dialRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Agency-ID", "agency-1")
	req.Header.Set("X-User-ID", "agent-1")
	req.Header.Set("X-Role", "AGENT")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDialReadyReturnsBareArray(t *testing.T) {
	queue := []models.DialReadyLead{
		{ID: "lead-1", FirstName: "Ada", LastName: "Morris", Phone: "555-0100", Status: models.LeadStatusNew, Source: models.LeadSourceManual},
		{ID: "lead-2", FirstName: "Ben", LastName: "Okafor", Phone: "555-0101", Status: models.LeadStatusContacted, Source: models.LeadSourceManual},
	}
	e := newDialServer(t, queue, nil)

	rec := dialRequest(e, http.MethodGet, "/leads/dial-ready", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// The queue is a JSON array at the top level, not wrapped in an envelope.
	var got []models.DialReadyLead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "lead-1", got[0].ID)
	assert.Equal(t, "lead-2", got[1].ID)
}

func TestDispositionReturnsUpdatedLead(t *testing.T) {
	lead := &models.Lead{
		ID:        "lead-1",
		AgencyID:  "agency-1",
		OwnerID:   "agent-1",
		FirstName: "Ada",
		LastName:  "Morris",
		Phone:     "555-0100",
		Status:    models.LeadStatusNew,
	}
	e := newDialServer(t, nil, lead)

	rec := dialRequest(e, http.MethodPost, "/leads/lead-1/disposition", `{"disposition":"SALE"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "lead-1", body["id"])
	assert.Equal(t, string(models.LeadStatusClosed), body["status"])
	assert.NotContains(t, body, "lead")
	assert.NotContains(t, body, "activity")
}
