package models

import "time"

// VendorType classifies where a lead batch was purchased from.
type VendorType string

const (
	VendorTypeInHouse    VendorType = "IN_HOUSE"
	VendorTypeThirdParty VendorType = "THIRD_PARTY"
)

// LeadBatch is a purchased or assigned cohort of leads from a single vendor.
type LeadBatch struct {
	ID           string     `json:"id" db:"id"`
	AgencyID     string     `json:"agencyId" db:"agency_id"`
	OwnerID      string     `json:"ownerId" db:"owner_id"`
	Name         string     `json:"name" db:"name"`
	Vendor       string     `json:"vendor" db:"vendor"`
	VendorType   VendorType `json:"vendorType" db:"vendor_type"`
	Cost         float64    `json:"cost" db:"cost"`
	Size         int        `json:"size" db:"size"`
	PurchaseDate time.Time  `json:"purchaseDate" db:"purchase_date"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// CreateLeadBatchRequest is the payload for registering a purchased batch.
type CreateLeadBatchRequest struct {
	Name       string  `json:"name" validate:"required"`
	Vendor     string  `json:"vendor"`
	VendorType string  `json:"vendorType,omitempty"`
	Cost       float64 `json:"cost" validate:"required,gt=0"`
	Size       int     `json:"size" validate:"required,gt=0"`
}

// BatchSummary is a batch with its computed performance metrics.
type BatchSummary struct {
	LeadBatch
	TotalLeads     int     `json:"totalLeads"`
	ContactedLeads int     `json:"contactedLeads"`
	ClosedLeads    int     `json:"closedLeads"`
	ContactRate    float64 `json:"contactRate"`
	ConversionRate float64 `json:"conversionRate"`
	ROI            float64 `json:"roi"`
}

// BatchLeadCounts holds the per-status tallies a batch summary is built from.
type BatchLeadCounts struct {
	BatchID   string `db:"batch_id"`
	Total     int    `db:"total"`
	Contacted int    `db:"contacted"`
	Closed    int    `db:"closed"`
}

// averagePremium is the assumed annualized premium per closed deal, used for
// batch ROI until real policy revenue is attributed back to batches.
const averagePremium = 2000.0

// Summarize computes contact rate, conversion rate, and ROI for a batch from
// its member lead counts.
func (b LeadBatch) Summarize(counts BatchLeadCounts) BatchSummary {
	summary := BatchSummary{
		LeadBatch:      b,
		TotalLeads:     counts.Total,
		ContactedLeads: counts.Contacted,
		ClosedLeads:    counts.Closed,
	}

	if counts.Total > 0 {
		summary.ContactRate = float64(counts.Contacted) / float64(counts.Total) * 100
		summary.ConversionRate = float64(counts.Closed) / float64(counts.Total) * 100
	}

	if b.Cost > 0 {
		revenue := float64(counts.Closed) * averagePremium
		summary.ROI = round2((revenue - b.Cost) / b.Cost * 100)
	}

	return summary
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
