package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestAllowedAgentResources(t *testing.T) {
	for _, resource := range []Resource{ResourceLeads, ResourceFinance, ResourceClients, ResourceDashboard} {
		assert.True(t, Allowed(models.RoleAgent, resource), "agent should access %s", resource)
		assert.True(t, Allowed(models.RoleSeniorAgent, resource), "senior agent should access %s", resource)
		assert.False(t, Allowed(models.RoleRecruit, resource), "recruit should not access %s", resource)
	}
}

func TestAllowedTeam(t *testing.T) {
	allowed := []models.Role{models.RoleManager, models.RoleAgencyOwner, models.RoleFounder, models.RolePlatformOwner}
	denied := []models.Role{models.RoleRecruit, models.RoleAgent, models.RoleSeniorAgent}

	for _, role := range allowed {
		assert.True(t, Allowed(role, ResourceTeam), "%s should access team", role)
	}
	for _, role := range denied {
		assert.False(t, Allowed(role, ResourceTeam), "%s should not access team", role)
	}
}

func TestAllowedFounder(t *testing.T) {
	assert.True(t, Allowed(models.RoleFounder, ResourceFounder))
	assert.True(t, Allowed(models.RolePlatformOwner, ResourceFounder))
	assert.False(t, Allowed(models.RoleAgencyOwner, ResourceFounder))
	assert.False(t, Allowed(models.RoleManager, ResourceFounder))
	assert.False(t, Allowed(models.RoleAgent, ResourceFounder))
}

func TestAllowedTenantPurge(t *testing.T) {
	for _, role := range models.Roles {
		if role == models.RolePlatformOwner {
			assert.True(t, Allowed(role, ResourceTenant))
			continue
		}
		assert.False(t, Allowed(role, ResourceTenant), "%s should not purge tenants", role)
	}
}

func TestAllowedRecruitPortal(t *testing.T) {
	for _, role := range models.Roles {
		assert.True(t, Allowed(role, ResourceRecruit))
	}
}
