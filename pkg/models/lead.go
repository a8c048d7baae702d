package models

import (
	"fmt"
	"time"
)

// LeadStatus is the lifecycle state of a lead. The set is closed; anything
// else coming off the wire or out of the database is rejected at parse time.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusSet       LeadStatus = "SET"
	LeadStatusSat       LeadStatus = "SAT"
	LeadStatusClosed    LeadStatus = "CLOSED"
	LeadStatusDead      LeadStatus = "DEAD"
	LeadStatusDuplicate LeadStatus = "DUPLICATE"
)

// LeadStatuses lists every valid lead status.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusSet,
	LeadStatusSat,
	LeadStatusClosed,
	LeadStatusDead,
	LeadStatusDuplicate,
}

func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, status := range LeadStatuses {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown lead status %q", value)
}

// IsDialable reports whether the dial-ready selector may surface a lead in
// this status. CLOSED, DEAD, and DUPLICATE are terminal for the dialing
// workflow; SET and SAT leads are worked through the calendar instead.
func (s LeadStatus) IsDialable() bool {
	return s == LeadStatusNew || s == LeadStatusContacted
}

// IsContacted reports whether the lead has been reached at least once. Used
// by the batch ROI and dashboard aggregations.
func (s LeadStatus) IsContacted() bool {
	switch s {
	case LeadStatusContacted, LeadStatusSet, LeadStatusSat, LeadStatusClosed:
		return true
	}
	return false
}

// LeadSource is the acquisition channel of a lead.
type LeadSource string

const (
	LeadSourceManual     LeadSource = "MANUAL"
	LeadSourceBatch      LeadSource = "BATCH"
	LeadSourceReferral   LeadSource = "REFERRAL"
	LeadSourceThirdParty LeadSource = "THIRD_PARTY"
)

var LeadSources = []LeadSource{
	LeadSourceManual,
	LeadSourceBatch,
	LeadSourceReferral,
	LeadSourceThirdParty,
}

func ParseLeadSource(value string) (LeadSource, error) {
	for _, source := range LeadSources {
		if string(source) == value {
			return source, nil
		}
	}
	return "", fmt.Errorf("unknown lead source %q", value)
}

// Lead is a prospective customer owned by exactly one agent. Leads are never
// hard-deleted; deletion is a status transition to DEAD.
type Lead struct {
	ID        string     `json:"id" db:"id"`
	AgencyID  string     `json:"agencyId" db:"agency_id"`
	OwnerID   string     `json:"ownerId" db:"owner_id"`
	FirstName string     `json:"firstName" db:"first_name"`
	LastName  string     `json:"lastName" db:"last_name"`
	Email     *string    `json:"email,omitempty" db:"email"`
	Phone     string     `json:"phone" db:"phone"`
	Age       *int       `json:"age,omitempty" db:"age"`
	State     *string    `json:"state,omitempty" db:"state"`
	Status    LeadStatus `json:"status" db:"status"`
	Source    LeadSource `json:"source" db:"source"`
	Tag       *string    `json:"tag,omitempty" db:"tag"`
	Notes     *string    `json:"notes,omitempty" db:"notes"`
	BatchID   *string    `json:"batchId,omitempty" db:"batch_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// CreateLeadRequest is the payload for manual lead creation.
type CreateLeadRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string  `json:"phone" validate:"required"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	State     *string `json:"state,omitempty"`
	Source    string  `json:"source,omitempty"`
	Tag       *string `json:"tag,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	BatchID   *string `json:"batchId,omitempty"`
}

// UpdateLeadRequest carries partial edits; nil fields are left alone.
type UpdateLeadRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	State     *string `json:"state,omitempty"`
	Tag       *string `json:"tag,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// DialReadyLead is the reduced view of a lead surfaced to the dial session.
type DialReadyLead struct {
	ID        string     `json:"id" db:"id"`
	FirstName string     `json:"firstName" db:"first_name"`
	LastName  string     `json:"lastName" db:"last_name"`
	Email     *string    `json:"email,omitempty" db:"email"`
	Phone     string     `json:"phone" db:"phone"`
	Age       *int       `json:"age,omitempty" db:"age"`
	State     *string    `json:"state,omitempty" db:"state"`
	Status    LeadStatus `json:"status" db:"status"`
	Source    LeadSource `json:"source" db:"source"`
	Notes     *string    `json:"notes,omitempty" db:"notes"`
	Tag       *string    `json:"tag,omitempty" db:"tag"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// LeadListItem is the CRM list view of a lead with its latest contact time.
type LeadListItem struct {
	ID          string     `json:"id" db:"id"`
	FirstName   string     `json:"firstName" db:"first_name"`
	LastName    string     `json:"lastName" db:"last_name"`
	Email       *string    `json:"email,omitempty" db:"email"`
	Phone       string     `json:"phone" db:"phone"`
	Status      LeadStatus `json:"status" db:"status"`
	Source      LeadSource `json:"source" db:"source"`
	Tag         *string    `json:"tag,omitempty" db:"tag"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastContact *time.Time `json:"lastContact,omitempty" db:"last_contact"`
}

// LeadDetail is a lead with its full activity history.
type LeadDetail struct {
	Lead
	Activities []LeadActivity `json:"activities"`
}
