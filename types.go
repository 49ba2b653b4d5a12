package access

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// UserStore is the credential store collaborator. The package never owns user
// records; it reads them for login and token resolution and writes exactly one
// new record per registration.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

// PasswordHasher hashes and verifies credentials. Implementations must embed a
// per-call random salt in the output and compare without early exit.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, password, hash string) error
}

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*Claims, error)
}

// TokenIssuer signs claims for a user into an opaque bearer token.
type TokenIssuer interface {
	Issue(user *User) (string, error)
}

// PrincipalResolver recognizes a caller already authenticated by a cooperating
// issuer. It is total: any undecodable or unresolvable token yields (nil, false).
type PrincipalResolver interface {
	Resolve(ctx context.Context, raw string) (*User, bool)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCESS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCESS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCESS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
