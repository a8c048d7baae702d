// Package policy maps (role, resource) pairs to access decisions. It replaces
// per-route role lists so the rules can be tested independent of routing.
package policy

import "github.com/Ramsey-B/clover/pkg/models"

// Resource names a guarded area of the API.
type Resource string

const (
	ResourceLeads     Resource = "leads"
	ResourceFinance   Resource = "finance"
	ResourceClients   Resource = "clients"
	ResourceDashboard Resource = "dashboard"
	ResourceTeam      Resource = "team"
	ResourceFounder   Resource = "founder"
	ResourceRecruit   Resource = "recruit"
	ResourceTenant    Resource = "tenant"
)

// agentResources are available to any activated producer.
var agentResources = map[Resource]bool{
	ResourceLeads:     true,
	ResourceFinance:   true,
	ResourceClients:   true,
	ResourceDashboard: true,
}

// Allowed reports whether the role may access the resource.
func Allowed(role models.Role, resource Resource) bool {
	switch resource {
	case ResourceRecruit:
		// The recruit portal is open to everyone with a session; activated
		// users simply have no profile behind it.
		return true
	case ResourceTeam:
		return role == models.RoleManager || role == models.RoleAgencyOwner ||
			role == models.RoleFounder || role == models.RolePlatformOwner
	case ResourceFounder:
		return role == models.RoleFounder || role == models.RolePlatformOwner
	case ResourceTenant:
		return role == models.RolePlatformOwner
	}

	if role == models.RoleRecruit {
		return false
	}

	return agentResources[resource]
}
