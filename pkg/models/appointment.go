package models

import "time"

// AppointmentDuration is the fixed length of appointments booked from a
// disposition.
const AppointmentDuration = time.Hour

// Appointment is a scheduled meeting between an agent and a lead.
type Appointment struct {
	ID        string    `json:"id" db:"id"`
	AgencyID  string    `json:"agencyId" db:"agency_id"`
	UserID    string    `json:"userId" db:"user_id"`
	LeadID    *string   `json:"leadId,omitempty" db:"lead_id"`
	Title     string    `json:"title" db:"title"`
	StartTime time.Time `json:"startTime" db:"start_time"`
	EndTime   time.Time `json:"endTime" db:"end_time"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
