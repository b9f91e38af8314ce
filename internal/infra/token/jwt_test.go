package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	now := time.Now()
	j := NewJWT("secret", "fastfood-api", "fastfood-client", 30*time.Minute)

	raw, exp, err := j.Issue(7, "alice", []string{"Customer"}, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(30*time.Minute), exp, time.Second)

	claims, err := j.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, []string{"Customer"}, claims.Roles)
}

func TestParse_ExpiredNoLeeway(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	j := NewJWT("secret", "iss", "aud", 30*time.Minute)

	raw, _, err := j.Issue(1, "bob", []string{"Customer"}, issued)
	require.NoError(t, err)

	justBefore := j.WithClock(func() time.Time { return issued.Add(29*time.Minute + 59*time.Second) })
	_, err = justBefore.Parse(raw)
	assert.NoError(t, err)

	atExpiry := j.WithClock(func() time.Time { return issued.Add(30*time.Minute + time.Second) })
	_, err = atExpiry.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongAudienceOrIssuer(t *testing.T) {
	now := time.Now()
	raw, _, err := NewJWT("secret", "iss", "aud", time.Minute).Issue(1, "bob", nil, now)
	require.NoError(t, err)

	_, err = NewJWT("secret", "iss", "other", time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWT("secret", "other", "aud", time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, _, err := NewJWT("secret", "iss", "aud", time.Minute).Issue(1, "bob", nil, time.Now())
	require.NoError(t, err)

	_, err = NewJWT("nope", "iss", "aud", time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsOtherAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "iss",
			Audience:  jwt.ClaimStrings{"aud"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", "iss", "aud", time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
