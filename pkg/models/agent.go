package models

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleRecruit       Role = "RECRUIT"
	RoleAgent         Role = "AGENT"
	RoleSeniorAgent   Role = "SENIOR_AGENT"
	RoleManager       Role = "MANAGER"
	RoleAgencyOwner   Role = "AGENCY_OWNER"
	RoleFounder       Role = "FOUNDER"
	RolePlatformOwner Role = "PLATFORM_OWNER"
)

var Roles = []Role{
	RoleRecruit,
	RoleAgent,
	RoleSeniorAgent,
	RoleManager,
	RoleAgencyOwner,
	RoleFounder,
	RolePlatformOwner,
}

func ParseRole(value string) (Role, error) {
	for _, r := range Roles {
		if string(r) == value {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// IsProducing reports whether the role writes business, i.e. counts toward
// team and founder production aggregates.
func (r Role) IsProducing() bool {
	return r == RoleAgent || r == RoleSeniorAgent
}

// Agent is the identity projection of a producing user, carried locally so
// team and founder aggregates do not round-trip to the identity provider.
type Agent struct {
	ID            string    `json:"id" db:"id"`
	AgencyID      string    `json:"agencyId" db:"agency_id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Role          Role      `json:"role" db:"role"`
	WeeklyPremium float64   `json:"weeklyPremium" db:"weekly_premium"`
	TotalApps     int       `json:"totalApps" db:"total_apps"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Agency is a tenant.
type Agency struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
