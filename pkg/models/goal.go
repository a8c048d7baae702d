package models

import "time"

// Goal is a per-agent production target (premium, appointments, dials, ...).
type Goal struct {
	ID        string    `json:"id" db:"id"`
	AgencyID  string    `json:"agencyId" db:"agency_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Target    float64   `json:"target" db:"target"`
	Current   float64   `json:"current" db:"current"`
	Deadline  time.Time `json:"deadline" db:"deadline"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateGoalRequest is the payload for setting a new goal.
type CreateGoalRequest struct {
	Type     string    `json:"type" validate:"required"`
	Target   float64   `json:"target" validate:"required,gt=0"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

// UpdateGoalRequest moves a goal's progress or target.
type UpdateGoalRequest struct {
	Target  *float64 `json:"target,omitempty" validate:"omitempty,gt=0"`
	Current *float64 `json:"current,omitempty" validate:"omitempty,gte=0"`
}
