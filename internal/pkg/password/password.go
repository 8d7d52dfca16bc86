/*
Package password implements one-way salted password hashing on top of bcrypt.

Digests embed their own salt and cost, so verification needs nothing but the digest.
Plaintext passwords never leave this package other than through the caller's own variables.
*/
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the work factor used when no valid cost is configured.
const DefaultCost = 10

const dummyPassword = "profilehub-dummy-password"

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int

	// dummy is compared against when the account does not exist, so both login
	// failure paths spend the same bcrypt work. It shares the Hasher's cost.
	dummy []byte
}

// NewHasher returns a Hasher using cost, or DefaultCost when cost is outside bcrypt's range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	h := &Hasher{cost: cost}
	if digest, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost); err == nil {
		h.dummy = digest
	}
	return h
}

// Cost returns the work factor new digests are produced with.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash produces a salted bcrypt digest of plaintext.
// It fails for inputs longer than 72 bytes.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a mismatch.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// VerifyDummy burns the same work as Verify against a digest nobody can match.
// If the dummy digest could not be built, hashing plaintext costs the same.
func (h *Hasher) VerifyDummy(plaintext string) {
	if h.dummy == nil {
		_, _ = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		return
	}
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
}
