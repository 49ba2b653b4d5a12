package access_test

import (
	"context"
	"testing"

	access "github.com/solera-labs/go-access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()

	t.Run("empty context", func(t *testing.T) {
		claims, ok := access.ClaimsFrom(ctx)
		assert.False(t, ok)
		assert.Nil(t, claims)
	})

	t.Run("round trip", func(t *testing.T) {
		claims := &access.Claims{UserEmail: "ada@example.com", UserRole: access.RoleAdmin}

		enriched := access.WithClaims(ctx, claims)

		got, ok := access.ClaimsFrom(enriched)
		require.True(t, ok)
		assert.Equal(t, claims, got)
	})
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()

	user := testUser(access.RoleCustomer)
	enriched := access.WithUser(ctx, user)

	got, ok := access.UserFrom(enriched)
	require.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = access.UserFrom(ctx)
	assert.False(t, ok)
}

func TestHasRole(t *testing.T) {
	ctx := context.Background()

	assert.False(t, access.HasRole(ctx, access.RoleAdmin))

	admin := access.WithClaims(ctx, &access.Claims{UserRole: access.RoleAdmin})
	assert.True(t, access.HasRole(admin, access.RoleAdmin))
	assert.False(t, access.HasRole(admin, access.RoleCustomer))
}
