package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceValidation(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, 0)
	assert.Error(t, err)
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	svc := newTestTokenService(t)

	token, issued, err := svc.GenerateJWT("user-1", "a@example.com", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.VerifyJWT(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := newTestTokenService(t)

	_, first, err := svc.GenerateJWT("user-1", "a@example.com", "user")
	require.NoError(t, err)
	_, second, err := svc.GenerateJWT("user-1", "a@example.com", "user")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestVerifyJWTExpired(t *testing.T) {
	svc := newTestTokenService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateJWT("user-1", "a@example.com", "user")
	require.NoError(t, err)

	svc.now = time.Now

	_, err = svc.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	token, _, err := other.GenerateJWT("user-1", "a@example.com", "user")
	require.NoError(t, err)

	_, err = svc.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTRejectsOtherAlgorithms(t *testing.T) {
	svc := newTestTokenService(t)

	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.VerifyJWT(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.VerifyJWT(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTRequiresSubjectAndRole(t *testing.T) {
	svc := newTestTokenService(t)

	token, _, err := svc.GenerateJWT("", "a@example.com", "user")
	require.NoError(t, err)
	_, err = svc.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, _, err = svc.GenerateJWT("user-1", "a@example.com", "")
	require.NoError(t, err)
	_, err = svc.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.VerifyJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalFromClaims(t *testing.T) {
	svc := newTestTokenService(t)

	_, claims, err := svc.GenerateJWT("user-1", "a@example.com", "user")
	require.NoError(t, err)

	p := PrincipalFromClaims(claims)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "a@example.com", p.Email)
	assert.Equal(t, "user", p.Role)
	assert.Equal(t, claims.ID, p.TokenID)
	assert.Equal(t, claims.ExpiresAt.Time, p.ExpiresAt)
}
