package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusIsDialable(t *testing.T) {
	assert.True(t, LeadStatusNew.IsDialable())
	assert.True(t, LeadStatusContacted.IsDialable())

	for _, status := range []LeadStatus{LeadStatusSet, LeadStatusSat, LeadStatusClosed, LeadStatusDead, LeadStatusDuplicate} {
		assert.False(t, status.IsDialable(), "status %s", status)
	}
}

func TestLeadStatusIsContacted(t *testing.T) {
	for _, status := range []LeadStatus{LeadStatusContacted, LeadStatusSet, LeadStatusSat, LeadStatusClosed} {
		assert.True(t, status.IsContacted(), "status %s", status)
	}
	for _, status := range []LeadStatus{LeadStatusNew, LeadStatusDead, LeadStatusDuplicate} {
		assert.False(t, status.IsContacted(), "status %s", status)
	}
}

func TestParseLeadStatus(t *testing.T) {
	parsed, err := ParseLeadStatus("CONTACTED")
	assert.NoError(t, err)
	assert.Equal(t, LeadStatusContacted, parsed)

	_, err = ParseLeadStatus("ARCHIVED")
	assert.Error(t, err)
}

func TestParseLeadSource(t *testing.T) {
	parsed, err := ParseLeadSource("BATCH")
	assert.NoError(t, err)
	assert.Equal(t, LeadSourceBatch, parsed)

	_, err = ParseLeadSource("ORGANIC")
	assert.Error(t, err)
}
