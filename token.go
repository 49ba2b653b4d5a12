package access

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenCodec signs claims into opaque bearer tokens and verifies them back.
// It is a pure function of (token, secret, clock): no I/O, no mutable state,
// safe to share across any number of goroutines.
type TokenCodec struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	now        func() time.Time
	logger     Logger
}

// NewTokenCodec creates a codec for the process-wide signing secret. The
// secret and TTL are fixed for the lifetime of the instance.
func NewTokenCodec(signingKey []byte, ttl time.Duration, issuer string, logger Logger) *TokenCodec {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenCodec{
		signingKey: signingKey,
		ttl:        ttl,
		issuer:     issuer,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock overrides the time source, used by expiry tests.
func (tc *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	if now != nil {
		tc.now = now
	}
	return tc
}

// TTL returns the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue signs a token carrying the user's id, email, and role.
func (tc *TokenCodec) Issue(user *User) (string, error) {
	if user == nil {
		return "", errors.New("cannot issue token for nil user", errors.CategoryInternal)
	}

	now := tc.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
		UserEmail: user.Email,
		UserRole:  user.Role,
	}

	return tc.SignClaims(claims)
}

// SignClaims signs arbitrary claims using the configured signing key.
func (tc *TokenCodec) SignClaims(claims *Claims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(tc.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signedString, nil
}

// Verify parses and validates a raw token, returning its claims. Failures are
// typed: ErrTokenMalformed for undecodable input, ErrTokenSignatureInvalid for
// a bad signature, ErrTokenExpired for a valid signature past expiry.
func (tc *TokenCodec) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			tc.logger.Error("token verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.signingKey, nil
	}, jwt.WithTimeFunc(tc.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	tc.logger.Error("token verify could not decode claims")
	return nil, ErrTokenMalformed
}
