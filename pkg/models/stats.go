package models

import "time"

// DashboardStats is the agent-level summary card set.
type DashboardStats struct {
	TotalLeads      int     `json:"totalLeads"`
	ContactedLeads  int     `json:"contactedLeads"`
	SetAppointments int     `json:"setAppointments"`
	ClosedDeals     int     `json:"closedDeals"`
	WeeklyAP        float64 `json:"weeklyAP"`
	MonthlyAP       float64 `json:"monthlyAP"`
	ConversionRate  float64 `json:"conversionRate"`
}

// DailyMetrics is the agent's activity tally for the current day.
type DailyMetrics struct {
	Dials           int `json:"dials"`
	Contacts        int `json:"contacts"`
	AppointmentsSet int `json:"appointmentsSet"`
	AppointmentsSat int `json:"appointmentsSat"`
	Applications    int `json:"applications"`
}

// TeamMember is one agent row in the manager view.
type TeamMember struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	WeeklyAP  float64 `json:"weeklyAP"`
	MonthlyAP float64 `json:"monthlyAP"`
	TotalApps int     `json:"totalApps"`
}

// TeamStats is the manager/agency-owner rollup.
type TeamStats struct {
	TotalMembers  int     `json:"totalMembers"`
	ActiveMembers int     `json:"activeMembers"`
	WeeklyAP      float64 `json:"weeklyAP"`
	MonthlyAP     float64 `json:"monthlyAP"`
	TotalApps     int     `json:"totalApps"`
}

// AgencyOverview is one agency row in the founder view.
type AgencyOverview struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TotalAgents int       `json:"totalAgents"`
	WeeklyAP    float64   `json:"weeklyAP"`
	MonthlyAP   float64   `json:"monthlyAP"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FounderStats is the platform-wide rollup.
type FounderStats struct {
	TotalAgencies  int     `json:"totalAgencies"`
	TotalAgents    int     `json:"totalAgents"`
	TotalWeeklyAP  float64 `json:"totalWeeklyAP"`
	TotalMonthlyAP float64 `json:"totalMonthlyAP"`
	ActiveRecruits int     `json:"activeRecruits"`
}
