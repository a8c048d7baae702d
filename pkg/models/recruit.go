package models

import (
	"fmt"
	"time"
)

// RecruitStatus is the onboarding pipeline state of a recruit.
type RecruitStatus string

const (
	RecruitStatusNew               RecruitStatus = "NEW"
	RecruitStatusSubmittedToTylica RecruitStatus = "SUBMITTED_TO_TYLICA"
	RecruitStatusAwaitingFFLEmails RecruitStatus = "AWAITING_FFL_EMAILS"
	RecruitStatusLicensed          RecruitStatus = "LICENSED"
	RecruitStatusActivated         RecruitStatus = "ACTIVATED"
)

var RecruitStatuses = []RecruitStatus{
	RecruitStatusNew,
	RecruitStatusSubmittedToTylica,
	RecruitStatusAwaitingFFLEmails,
	RecruitStatusLicensed,
	RecruitStatusActivated,
}

func ParseRecruitStatus(value string) (RecruitStatus, error) {
	for _, s := range RecruitStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown recruit status %q", value)
}

// IsActive reports whether the recruit still counts toward the onboarding
// pipeline totals. ACTIVATED recruits have graduated to agents.
func (s RecruitStatus) IsActive() bool {
	return s != RecruitStatusActivated
}

// RecruitProfile holds onboarding data for a not-yet-activated agent.
type RecruitProfile struct {
	ID          string        `json:"id" db:"id"`
	AgencyID    string        `json:"agencyId" db:"agency_id"`
	UserID      string        `json:"userId" db:"user_id"`
	Status      RecruitStatus `json:"status" db:"status"`
	Phone       *string       `json:"phone,omitempty" db:"phone"`
	Address     *string       `json:"address,omitempty" db:"address"`
	City        *string       `json:"city,omitempty" db:"city"`
	State       *string       `json:"state,omitempty" db:"state"`
	ZipCode     *string       `json:"zipCode,omitempty" db:"zip_code"`
	DateOfBirth *time.Time    `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	CreatedAt   time.Time     `json:"submittedAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// UpdateRecruitProfileRequest carries contact-detail edits from the recruit
// portal. Status moves are owner-side operations, not self-service.
type UpdateRecruitProfileRequest struct {
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	City        *string    `json:"city,omitempty"`
	State       *string    `json:"state,omitempty"`
	ZipCode     *string    `json:"zipCode,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}
