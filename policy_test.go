package access_test

import (
	"testing"

	access "github.com/solera-labs/go-access"
	"github.com/stretchr/testify/assert"
)

func TestPolicyRegistry(t *testing.T) {
	t.Run("lookup returns registered policy", func(t *testing.T) {
		registry := access.NewPolicyRegistry().
			Register("products.list", access.PublicRoute()).
			Register("orders.create", access.AuthenticatedRoute()).
			Register("products.delete", access.RestrictedRoute(access.RoleAdmin))

		assert.True(t, registry.Lookup("products.list").Public)
		assert.Empty(t, registry.Lookup("orders.create").Roles)
		assert.Equal(t, []access.Role{access.RoleAdmin}, registry.Lookup("products.delete").Roles)
	})

	t.Run("unregistered route defaults to authenticated", func(t *testing.T) {
		registry := access.NewPolicyRegistry()

		policy := registry.Lookup("never.registered")
		assert.False(t, policy.Public)
		assert.Empty(t, policy.Roles)
	})

	t.Run("re-registration replaces the policy", func(t *testing.T) {
		registry := access.NewPolicyRegistry().
			Register("reports.view", access.PublicRoute()).
			Register("reports.view", access.RestrictedRoute(access.RoleAdmin))

		policy := registry.Lookup("reports.view")
		assert.False(t, policy.Public)
		assert.Equal(t, []access.Role{access.RoleAdmin}, policy.Roles)
	})

	t.Run("routes lists registered identifiers", func(t *testing.T) {
		registry := access.NewPolicyRegistry().
			Register("a", access.PublicRoute()).
			Register("b", access.AuthenticatedRoute())

		assert.ElementsMatch(t, []string{"a", "b"}, registry.Routes())
	})
}

func TestRoutePolicyZeroValue(t *testing.T) {
	var policy access.RoutePolicy
	assert.False(t, policy.Public)
	assert.Empty(t, policy.Roles)
}
