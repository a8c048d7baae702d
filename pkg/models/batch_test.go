package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	batch := LeadBatch{ID: "batch-1", Cost: 1000, Size: 100}

	summary := batch.Summarize(BatchLeadCounts{Total: 100, Contacted: 40, Closed: 2})

	assert.Equal(t, 100, summary.TotalLeads)
	assert.Equal(t, 40, summary.ContactedLeads)
	assert.Equal(t, 2, summary.ClosedLeads)
	assert.InDelta(t, 40.0, summary.ContactRate, 0.001)
	assert.InDelta(t, 2.0, summary.ConversionRate, 0.001)
	// 2 closed * 2000 assumed premium = 4000 revenue on 1000 cost
	assert.InDelta(t, 300.0, summary.ROI, 0.001)
}

func TestSummarizeEmptyBatch(t *testing.T) {
	batch := LeadBatch{ID: "batch-1", Cost: 500}

	summary := batch.Summarize(BatchLeadCounts{})

	assert.Zero(t, summary.ContactRate)
	assert.Zero(t, summary.ConversionRate)
	assert.InDelta(t, -100.0, summary.ROI, 0.001, "no closes means the full spend is lost")
}

func TestSummarizeZeroCost(t *testing.T) {
	batch := LeadBatch{ID: "batch-1"}

	summary := batch.Summarize(BatchLeadCounts{Total: 10, Contacted: 5, Closed: 1})

	assert.Zero(t, summary.ROI, "ROI is undefined without spend")
}
