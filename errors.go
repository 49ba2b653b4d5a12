package access

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials covers both "no such user" and "wrong password" so a
// login response never reveals whether an email is registered.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL").
	WithCode(errors.CodeConflict)

// ErrTokenMalformed is returned for input that does not decode as a token.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("AUTH_TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignatureInvalid is returned for a decodable token whose signature
// does not verify against the configured secret.
var ErrTokenSignatureInvalid = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode("AUTH_TOKEN_SIGNATURE").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for a well signed token past its expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("AUTH_TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is the external collapse of every token-level failure.
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode("UNAUTHENTICATED").
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when an authenticated caller lacks a required role.
var ErrForbidden = errors.New("insufficient role", errors.CategoryAuthz).
	WithTextCode("FORBIDDEN").
	WithCode(errors.CodeForbidden)

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
