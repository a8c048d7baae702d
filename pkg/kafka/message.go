package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

// IncomingMessage wraps a raw Kafka message with parsed headers.
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	ImportMessage *LeadImportMessage
}

// LeadImportMessage is a batch of leads pushed onto the import topic, usually
// by the vendor upload pipeline.
type LeadImportMessage struct {
	AgencyID string           `json:"agency_id"`
	OwnerID  string           `json:"owner_id"`
	BatchID  *string          `json:"batch_id,omitempty"`
	Leads    []ImportLeadData `json:"leads"`
}

// ImportLeadData is one lead row in an import message.
type ImportLeadData struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     string  `json:"phone"`
	Age       *int    `json:"age,omitempty"`
	State     *string `json:"state,omitempty"`
	Tag       *string `json:"tag,omitempty"`
}

// ParseImportMessage parses the message value as a lead import payload.
func (m *IncomingMessage) ParseImportMessage() error {
	var payload LeadImportMessage
	if err := json.Unmarshal(m.Value, &payload); err != nil {
		return fmt.Errorf("failed to parse import message: %w", err)
	}
	if payload.AgencyID == "" {
		return fmt.Errorf("import message missing agency_id")
	}
	if payload.OwnerID == "" {
		return fmt.Errorf("import message missing owner_id")
	}

	m.ImportMessage = &payload
	return nil
}
