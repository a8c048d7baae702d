package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
)

type fakeLeadCreator struct {
	created []models.CreateLeadRequest
	failOn  string
}

func (f *fakeLeadCreator) Create(ctx context.Context, agencyID, ownerID string, req models.CreateLeadRequest) (*models.Lead, error) {
	if f.failOn != "" && req.Phone == f.failOn {
		return nil, errors.New("insert failed")
	}
	f.created = append(f.created, req)
	return &models.Lead{
		ID:        "lead-" + req.Phone,
		AgencyID:  agencyID,
		OwnerID:   ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Status:    models.LeadStatusNew,
		Source:    models.LeadSourceBatch,
	}, nil
}

func importMessage(t *testing.T, payload kafka.LeadImportMessage) *kafka.IncomingMessage {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	msg := &kafka.IncomingMessage{Value: raw}
	require.NoError(t, msg.ParseImportMessage())
	return msg
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestHandleMessageImportsAllRows(t *testing.T) {
	creator := &fakeLeadCreator{}
	p := NewProcessor(creator, nil, testLogger())

	batchID := "batch-1"
	msg := importMessage(t, kafka.LeadImportMessage{
		AgencyID: "agency-1",
		OwnerID:  "agent-1",
		BatchID:  &batchID,
		Leads: []kafka.ImportLeadData{
			{FirstName: "Ada", LastName: "Morris", Phone: "555-0100"},
			{FirstName: "Ben", LastName: "Okafor", Phone: "555-0101"},
		},
	})

	require.NoError(t, p.HandleMessage(context.Background(), msg))
	require.Len(t, creator.created, 2)
	assert.Equal(t, string(models.LeadSourceBatch), creator.created[0].Source)
	require.NotNil(t, creator.created[0].BatchID)
	assert.Equal(t, batchID, *creator.created[0].BatchID)
}

func TestHandleMessageSkipsBadRows(t *testing.T) {
	creator := &fakeLeadCreator{failOn: "555-0100"}
	p := NewProcessor(creator, nil, testLogger())

	msg := importMessage(t, kafka.LeadImportMessage{
		AgencyID: "agency-1",
		OwnerID:  "agent-1",
		Leads: []kafka.ImportLeadData{
			{FirstName: "Ada", LastName: "Morris", Phone: "555-0100"},
			{FirstName: "Ben", LastName: "Okafor", Phone: "555-0101"},
		},
	})

	require.NoError(t, p.HandleMessage(context.Background(), msg))
	require.Len(t, creator.created, 1)
	assert.Equal(t, "555-0101", creator.created[0].Phone)
}

func TestHandleMessageFailsWhenNothingImported(t *testing.T) {
	creator := &fakeLeadCreator{failOn: "555-0100"}
	p := NewProcessor(creator, nil, testLogger())

	msg := importMessage(t, kafka.LeadImportMessage{
		AgencyID: "agency-1",
		OwnerID:  "agent-1",
		Leads: []kafka.ImportLeadData{
			{FirstName: "Ada", LastName: "Morris", Phone: "555-0100"},
		},
	})

	err := p.HandleMessage(context.Background(), msg)
	assert.ErrorIs(t, err, ErrBatchFailed)
}

func TestParseImportMessageRejectsMissingScope(t *testing.T) {
	raw, err := json.Marshal(kafka.LeadImportMessage{OwnerID: "agent-1"})
	require.NoError(t, err)

	msg := &kafka.IncomingMessage{Value: raw}
	assert.Error(t, msg.ParseImportMessage())
}
