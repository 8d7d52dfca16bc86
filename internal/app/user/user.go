/*
Package user contains the account model and the Credential Store that persists it.

A User is the identity record behind every authenticated request: its id is the only
value carried in bearer tokens, and its profile image reference names a file held by
the image store.
*/
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when another account already uses the username.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrEmailTaken is returned when another account already uses the email address.
	ErrEmailTaken = errors.New("email already in use")

	// ErrNoFieldsProvided is returned by Update when neither field is set.
	ErrNoFieldsProvided = errors.New("no fields provided for update")
)

// User is a registered account.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`

	// PasswordHash is the bcrypt digest. It is never serialized.
	PasswordHash string `json:"-"`

	// ProfileImage is the stored file name of the current profile image, or "" for none.
	ProfileImage string `json:"profile_image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasProfileImage reports whether the user has a custom profile image.
func (u *User) HasProfileImage() bool {
	return u.ProfileImage != ""
}

// NewUser carries the fields required to create an account.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// UpdateFields is a partial profile update. A nil field is left unchanged.
type UpdateFields struct {
	Username *string
	Email    *string
}

// Empty reports whether the update carries no field.
func (f UpdateFields) Empty() bool {
	return f.Username == nil && f.Email == nil
}

// NormalizeEmail lowercases and trims an email address. Emails are stored normalized
// so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims surrounding whitespace. Usernames are case-sensitive.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
