package access_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	access "github.com/solera-labs/go-access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key-0123456789abcdef")

func testUser(role access.Role) *access.User {
	return &access.User{
		ID:    uuid.New(),
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Role:  role,
	}
}

func TestTokenCodecIssue(t *testing.T) {
	codec := access.NewTokenCodec(testSigningKey, time.Hour, "test-issuer", nil)
	user := testUser(access.RoleAdmin)

	t.Run("round trip preserves claims", func(t *testing.T) {
		token, err := codec.Issue(user)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := codec.Verify(token)
		require.NoError(t, err)

		assert.Equal(t, user.ID.String(), claims.Subject())
		assert.Equal(t, user.Email, claims.Email())
		assert.Equal(t, access.RoleAdmin, claims.Role())
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), 5*time.Second)
		assert.WithinDuration(t, time.Now(), claims.IssuedAt(), 5*time.Second)
	})

	t.Run("nil user", func(t *testing.T) {
		_, err := codec.Issue(nil)
		assert.Error(t, err)
	})
}

func TestTokenCodecVerify(t *testing.T) {
	codec := access.NewTokenCodec(testSigningKey, time.Hour, "test-issuer", nil)
	user := testUser(access.RoleCustomer)

	t.Run("malformed input", func(t *testing.T) {
		for _, raw := range []string{"", "garbage", "a.b", "....", "Bearer xyz"} {
			_, err := codec.Verify(raw)
			assert.ErrorIs(t, err, access.ErrTokenMalformed, "input %q", raw)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := access.NewTokenCodec([]byte("another-signing-key-with-length!"), time.Hour, "test-issuer", nil)
		token, err := other.Issue(user)
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, access.ErrTokenSignatureInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		issuedAt := time.Now().Add(-2 * time.Hour)
		stale := access.NewTokenCodec(testSigningKey, time.Hour, "test-issuer", nil).
			WithClock(func() time.Time { return issuedAt })

		token, err := stale.Issue(user)
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, access.ErrTokenExpired)
	})

	t.Run("rejects non-HMAC signing method", func(t *testing.T) {
		// alg=none style tokens must not pass however they are framed.
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": user.ID.String(),
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Verify(raw)
		assert.Error(t, err)
	})
}

func TestTokenCodecTTL(t *testing.T) {
	codec := access.NewTokenCodec(testSigningKey, 30*time.Minute, "", nil)
	assert.Equal(t, 30*time.Minute, codec.TTL())
}
