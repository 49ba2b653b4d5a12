package access

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded bearer-token payload. Instances are immutable once
// decoded; they live for the duration of a single request.
type Claims struct {
	jwt.RegisteredClaims
	UserEmail string `json:"email,omitempty"`
	UserRole  Role   `json:"role,omitempty"`
}

// Subject returns the subject claim, the user's id.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Email returns the email the token was issued for.
func (c *Claims) Email() string {
	return c.UserEmail
}

// Role returns the role captured at issue time. It can go stale after a later
// role change; only the foreign-token path re-reads the live record.
func (c *Claims) Role() Role {
	return c.UserRole
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// claimsFromUser rebuilds request-scope claims from a live user record. Used
// by the foreign-token path where the store, not the token, is authoritative.
// The result carries no expiry; it lives only for the current request.
func claimsFromUser(user *User) *Claims {
	if user == nil {
		return nil
	}

	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID.String(),
		},
		UserEmail: user.Email,
		UserRole:  user.Role,
	}
}
