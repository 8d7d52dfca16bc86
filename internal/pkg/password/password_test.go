package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, pw := range []string{"secret", "pässwörd", " spaced ", strings.Repeat("a", 72)} {
		digest, err := h.Hash(pw)
		require.NoError(t, err)
		require.NotContains(t, digest, pw)
		require.True(t, h.Verify(pw, digest))
		require.False(t, h.Verify(pw+"x", digest))
	}
}

func TestHash_IsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerify_MalformedDigestIsFalse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	require.False(t, h.Verify("secret", ""))
	require.False(t, h.Verify("secret", "not-a-bcrypt-digest"))
	require.False(t, h.Verify("secret", "$2a$04$short"))
}

func TestNewHasher_CostBounds(t *testing.T) {
	require.Equal(t, DefaultCost, NewHasher(0).Cost())
	require.Equal(t, DefaultCost, NewHasher(bcrypt.MaxCost+1).Cost())
	require.Equal(t, 12, NewHasher(12).Cost())

	digest, err := NewHasher(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost, cost)
}

func TestHash_TooLong(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	require.Error(t, err)
}

func TestVerifyDummy_DoesNotPanic(t *testing.T) {
	NewHasher(bcrypt.MinCost).VerifyDummy("anything")
}

func TestVerifyDummy_UsesHasherCost(t *testing.T) {
	for _, c := range []int{bcrypt.MinCost, bcrypt.MinCost + 1} {
		h := NewHasher(c)
		require.NotNil(t, h.dummy)

		cost, err := bcrypt.Cost(h.dummy)
		require.NoError(t, err)
		require.Equal(t, c, cost)
	}
}
