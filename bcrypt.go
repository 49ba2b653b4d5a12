package access

import (
	"context"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 12

// DefaultMaxConcurrentHashes bounds in-flight bcrypt work so credential
// hashing cannot starve unrelated request handling.
const DefaultMaxConcurrentHashes = 8

// ErrNoEmptyString rejects hashing the empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD")

// ErrMismatchedHashAndPassword is the single verification failure. A malformed
// stored hash degrades to the same error so callers see one failure mode.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// Hasher hashes and verifies passwords with bcrypt. Each hash embeds a fresh
// random salt, so two hashes of the same password differ, and bcrypt's
// comparison runs the full work factor regardless of where a mismatch occurs.
//
// The weighted semaphore keeps the deliberately expensive hashing off the
// request-dispatch hot path: callers block only on a slot, and a cancelled
// context abandons the wait without leaving any shared state behind.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher returns a Hasher with the given bcrypt cost and concurrency bound.
// Out-of-range values fall back to the defaults.
func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentHashes
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash generates a salted hash for the given password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, errors.CategoryOperation, "hashing cancelled")
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	return string(hash), nil
}

// Compare validates the given cleartext password against the stored hash.
func (h *Hasher) Compare(ctx context.Context, password, hash string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "verification cancelled")
	}
	defer h.sem.Release(1)

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		// bcrypt.ErrHashTooShort and friends land here too: a corrupt stored
		// hash is reported as a plain mismatch, never a panic or internal error.
		return ErrMismatchedHashAndPassword
	}
	return nil
}

var _ PasswordHasher = (*Hasher)(nil)
