package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/internal/repositories/lead"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
)

// dialReadyFixture seeds leads and call activities directly so created_at and
// activity timestamps are under test control.
type dialReadyFixture struct {
	db       database.DB
	repo     *lead.Repository
	ctx      context.Context
	agencyID string
	ownerID  string
}

// setupDialReadyFixture connects to the database named by TEST_DATABASE_URL.
// The schema must already be migrated.
func setupDialReadyFixture(t *testing.T) *dialReadyFixture {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Database not configured")
	}

	sqlxDB, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqlxDB.Close() })

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	db := database.NewDatabaseInstance(sqlxDB, logger)

	f := &dialReadyFixture{
		db:       db,
		repo:     lead.NewRepository(db, logger),
		ctx:      context.Background(),
		agencyID: "agency-" + uuid.New().String()[:8],
		ownerID:  "agent-" + uuid.New().String()[:8],
	}

	t.Cleanup(func() {
		_, _ = db.ExecContext(f.ctx, "DELETE FROM lead_activities WHERE agency_id = $1", f.agencyID)
		_, _ = db.ExecContext(f.ctx, "DELETE FROM leads WHERE agency_id = $1", f.agencyID)
	})

	return f
}

func (f *dialReadyFixture) seedLead(t *testing.T, ownerID string, status models.LeadStatus, createdAt time.Time) string {
	id := uuid.New().String()
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO leads (id, agency_id, owner_id, first_name, last_name, phone, status, source, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		id, f.agencyID, ownerID, "Lead", id[:8], "555-0100", status, models.LeadSourceManual, createdAt)
	require.NoError(t, err)
	return id
}

func (f *dialReadyFixture) seedCall(t *testing.T, leadID string, at time.Time) {
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO lead_activities (id, lead_id, agency_id, type, description, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), leadID, f.agencyID, models.ActivityTypeCall, "Outbound call", f.ownerID, at)
	require.NoError(t, err)
}

func TestDialReadyEligibilityAndOrder(t *testing.T) {
	f := setupDialReadyFixture(t)
	now := time.Now().UTC()

	// Eligible, in expected order: NEW before CONTACTED, then oldest first.
	newOld := f.seedLead(t, f.ownerID, models.LeadStatusNew, now.Add(-72*time.Hour))
	newRecent := f.seedLead(t, f.ownerID, models.LeadStatusNew, now.Add(-24*time.Hour))
	contactedOld := f.seedLead(t, f.ownerID, models.LeadStatusContacted, now.Add(-96*time.Hour))

	// Excluded: terminal or in-progress statuses.
	f.seedLead(t, f.ownerID, models.LeadStatusSet, now.Add(-80*time.Hour))
	f.seedLead(t, f.ownerID, models.LeadStatusDead, now.Add(-80*time.Hour))
	f.seedLead(t, f.ownerID, models.LeadStatusClosed, now.Add(-80*time.Hour))

	// Excluded: another agent's lead, even though it is NEW.
	f.seedLead(t, "agent-other", models.LeadStatusNew, now.Add(-100*time.Hour))

	// Excluded: called twenty minutes ago, inside the cooldown window.
	cooled := f.seedLead(t, f.ownerID, models.LeadStatusNew, now.Add(-120*time.Hour))
	f.seedCall(t, cooled, now.Add(-20*time.Minute))

	// Eligible: last call was three hours ago, outside the cooldown window.
	recovered := f.seedLead(t, f.ownerID, models.LeadStatusNew, now.Add(-48*time.Hour))
	f.seedCall(t, recovered, now.Add(-3*time.Hour))

	leads, err := f.repo.DialReady(f.ctx, f.agencyID, f.ownerID, 2*time.Hour, 50)
	require.NoError(t, err)

	ids := make([]string, 0, len(leads))
	for _, l := range leads {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{newOld, newRecent, recovered, contactedOld}, ids)
}

func TestDialReadyTieBreaksOnFewestActivities(t *testing.T) {
	f := setupDialReadyFixture(t)
	now := time.Now().UTC()
	createdAt := now.Add(-48 * time.Hour).Truncate(time.Second)

	// Same status and created_at; the lead with fewer touches comes first.
	touched := f.seedLead(t, f.ownerID, models.LeadStatusContacted, createdAt)
	untouched := f.seedLead(t, f.ownerID, models.LeadStatusContacted, createdAt)
	f.seedCall(t, touched, now.Add(-30*time.Hour))
	f.seedCall(t, touched, now.Add(-20*time.Hour))

	leads, err := f.repo.DialReady(f.ctx, f.agencyID, f.ownerID, 2*time.Hour, 50)
	require.NoError(t, err)

	require.Len(t, leads, 2)
	assert.Equal(t, untouched, leads[0].ID)
	assert.Equal(t, touched, leads[1].ID)
}

func TestDialReadyRespectsCap(t *testing.T) {
	f := setupDialReadyFixture(t)
	now := time.Now().UTC()

	for i := 0; i < 60; i++ {
		f.seedLead(t, f.ownerID, models.LeadStatusNew, now.Add(-time.Duration(i+1)*time.Hour))
	}

	leads, err := f.repo.DialReady(f.ctx, f.agencyID, f.ownerID, 2*time.Hour, 50)
	require.NoError(t, err)
	assert.Len(t, leads, 50)

	// The cap keeps the oldest leads, dropping the newest ten.
	for i := 1; i < len(leads); i++ {
		assert.True(t, leads[i-1].CreatedAt.Before(leads[i].CreatedAt) || leads[i-1].CreatedAt.Equal(leads[i].CreatedAt),
			fmt.Sprintf("queue out of order at position %d", i))
	}
}

func TestDialReadyStatusChangeDoesNotCooldown(t *testing.T) {
	f := setupDialReadyFixture(t)
	now := time.Now().UTC()

	// A disposition logs a status_change activity; only call activities hold a
	// lead out of the queue.
	dispositioned := f.seedLead(t, f.ownerID, models.LeadStatusContacted, now.Add(-24*time.Hour))
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO lead_activities (id, lead_id, agency_id, type, description, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), dispositioned, f.agencyID, models.ActivityTypeStatusChange,
		"Call disposition: NO_ANSWER", f.ownerID, now.Add(-5*time.Minute))
	require.NoError(t, err)

	leads, err := f.repo.DialReady(f.ctx, f.agencyID, f.ownerID, 2*time.Hour, 50)
	require.NoError(t, err)

	require.Len(t, leads, 1)
	assert.Equal(t, dispositioned, leads[0].ID)
}
