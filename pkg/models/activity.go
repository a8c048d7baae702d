package models

import (
	"fmt"
	"time"
)

// ActivityType classifies entries in a lead's append-only activity log.
type ActivityType string

const (
	ActivityTypeCreated      ActivityType = "created"
	ActivityTypeStatusChange ActivityType = "status_change"
	ActivityTypeUpdated      ActivityType = "updated"
	ActivityTypeDeleted      ActivityType = "deleted"
	ActivityTypeCall         ActivityType = "call"
	ActivityTypeAppointment  ActivityType = "appointment"
	ActivityTypeApplication  ActivityType = "application"
)

var ActivityTypes = []ActivityType{
	ActivityTypeCreated,
	ActivityTypeStatusChange,
	ActivityTypeUpdated,
	ActivityTypeDeleted,
	ActivityTypeCall,
	ActivityTypeAppointment,
	ActivityTypeApplication,
}

func ParseActivityType(value string) (ActivityType, error) {
	for _, t := range ActivityTypes {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown activity type %q", value)
}

// LeadActivity is one log entry on a lead. Rows are never updated or removed
// after creation; ordering is by created_at.
type LeadActivity struct {
	ID          string       `json:"id" db:"id"`
	LeadID      string       `json:"leadId" db:"lead_id"`
	AgencyID    string       `json:"agencyId" db:"agency_id"`
	Type        ActivityType `json:"type" db:"type"`
	Description string       `json:"description" db:"description"`
	UserID      string       `json:"userId" db:"user_id"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
}
