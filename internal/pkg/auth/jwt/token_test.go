package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret")
	userID := uuid.New()

	tok, err := svc.Issue(userID)
	require.NoError(t, err)

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestIssue_ExpiresAfterOneHour(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tok, err := NewService("k", WithClock(fixedClock(issuedAt))).Issue(uuid.New())
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	require.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())
	require.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	require.Equal(t, TokenIssuer, claims.Issuer)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tok, err := NewService("k", WithClock(fixedClock(issuedAt))).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewService("k", WithClock(fixedClock(issuedAt.Add(59*time.Minute)))).Verify(tok)
	require.NoError(t, err)

	_, err = NewService("k", WithClock(fixedClock(issuedAt.Add(time.Hour+time.Second)))).Verify(tok)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService("right-secret").Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewService("wrong-secret").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewService("secret")
	tok, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	forged := `{"userId":"` + uuid.New().String() + `","exp":4102444800}`
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = svc.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_TamperedExpiredTokenReportsSignature(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, err := NewService("a", WithClock(fixedClock(issuedAt))).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewService("b").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewService("k")
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b"} {
		_, err := svc.Verify(tok)
		require.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewService("k").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_BadUserIDClaim(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID: "42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewService("k").Verify(tok)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: uuid.New().String()}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewService("k").Verify(tok)
	require.Error(t, err)
}
