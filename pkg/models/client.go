package models

import "time"

// Client is a converted lead with one or more policies.
type Client struct {
	ID        string    `json:"id" db:"id"`
	AgencyID  string    `json:"agencyId" db:"agency_id"`
	AgentID   string    `json:"agentId" db:"agent_id"`
	LeadID    *string   `json:"leadId,omitempty" db:"lead_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Policy is an insurance policy written for a client.
type Policy struct {
	ID          string     `json:"id" db:"id"`
	ClientID    string     `json:"clientId" db:"client_id"`
	AgencyID    string     `json:"agencyId" db:"agency_id"`
	Carrier     string     `json:"carrier" db:"carrier"`
	ProductType string     `json:"productType" db:"product_type"`
	FaceAmount  *float64   `json:"faceAmount,omitempty" db:"face_amount"`
	Premium     float64    `json:"premium" db:"premium"`
	Status      string     `json:"status" db:"status"`
	IssueDate   *time.Time `json:"issueDate,omitempty" db:"issue_date"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// ClientSummary is a client with policies and the summed annual premium.
type ClientSummary struct {
	Client
	Policies     []Policy `json:"policies"`
	TotalPremium float64  `json:"totalPremium"`
}

// CreateClientRequest is the payload for creating a client, typically from a
// closed lead.
type CreateClientRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	LeadID    *string `json:"leadId,omitempty"`
}
