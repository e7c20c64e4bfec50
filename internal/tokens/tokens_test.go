package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestCreateAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	p := Payload{ID: uuid.NewString(), Username: "bob", Type: "owner"}
	exp := time.Now().Add(15 * time.Minute).UTC()

	token, err := CreateAccessToken(testSecret, p, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, p, claims.Payload())
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	p := Payload{ID: uuid.NewString(), Username: "bob", Type: "customer"}

	expired, err := CreateAccessToken(testSecret, p, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	foreign, err := CreateAccessToken([]byte("other-secret"), p, time.Now().Add(time.Minute))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": p.ID})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "alg none", token: unsigned},
		{name: "garbage", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := AccessClaimsFromToken(tt.token, testSecret)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
