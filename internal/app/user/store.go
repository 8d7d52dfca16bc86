package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"profilehub/internal/app/db"
)

// Names of the UNIQUE constraints declared by the users migration.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

const userColumns = `id, username, email, password_hash, profile_image, created_at, updated_at`

const (
	availabilitySQL = `
SELECT
	EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $3),
	EXISTS(SELECT 1 FROM users WHERE email = $2 AND id <> $3)`

	insertSQL = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING ` + userColumns

	selectByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	selectByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	updateSQL = `
UPDATE users
SET username   = COALESCE($2, username),
    email      = COALESCE($3, email),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

	deleteSQL = `DELETE FROM users WHERE id = $1 RETURNING profile_image`

	lockImageSQL = `SELECT profile_image FROM users WHERE id = $1 FOR UPDATE`

	setImageSQL = `UPDATE users SET profile_image = $2, updated_at = now() WHERE id = $1`
)

// DBTX is the subset of *pgxpool.Pool the store uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the Credential Store backed by PostgreSQL. Every read goes to the database;
// nothing is cached in process.
type Store struct {
	db DBTX
}

// NewStore creates a Store on top of conn.
func NewStore(conn DBTX) *Store {
	return &Store{db: conn}
}

// Create inserts a new account. The availability check gives a precise error on the
// common path; the UNIQUE constraints decide races between concurrent registrations.
func (s *Store) Create(ctx context.Context, nu NewUser) (*User, error) {
	username := NormalizeUsername(nu.Username)
	email := NormalizeEmail(nu.Email)

	if err := s.checkAvailable(ctx, uuid.Nil, &username, &email); err != nil {
		return nil, err
	}

	u, err := scanUser(s.db.QueryRow(ctx, insertSQL, username, email, nu.PasswordHash))
	if err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

// FindByUsername returns the account with exactly this username.
func (s *Store) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, selectByUsernameSQL, NormalizeUsername(username)))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// FindByID returns the account with the given id.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, selectByIDSQL, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Update applies the fields present in f and returns the updated account.
func (s *Store) Update(ctx context.Context, id uuid.UUID, f UpdateFields) (*User, error) {
	if f.Empty() {
		return nil, ErrNoFieldsProvided
	}

	if f.Username != nil {
		v := NormalizeUsername(*f.Username)
		f.Username = &v
	}
	if f.Email != nil {
		v := NormalizeEmail(*f.Email)
		f.Email = &v
	}

	if err := s.checkAvailable(ctx, id, f.Username, f.Email); err != nil {
		return nil, err
	}

	u, err := scanUser(s.db.QueryRow(ctx, updateSQL, id, f.Username, f.Email))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return u, nil
}

// Delete removes the account and returns the profile image it referenced, if any,
// so the caller can reclaim the file.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	var image pgtype.Text
	if err := s.db.QueryRow(ctx, deleteSQL, id).Scan(&image); err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("delete user: %w", err)
	}
	return image.String, nil
}

// SetProfileImage points the account at filename and returns the previous reference
// ("" if none). The row is locked for the read and the write, so concurrent
// replacements for one user are serialized and each sees its true predecessor.
func (s *Store) SetProfileImage(ctx context.Context, id uuid.UUID, filename string) (string, error) {
	var previous pgtype.Text

	err := db.WithTx(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, lockImageSQL, id).Scan(&previous); err != nil {
			if db.IsNoRows(err) {
				return ErrNotFound
			}
			return fmt.Errorf("lock user row: %w", err)
		}

		if _, err := tx.Exec(ctx, setImageSQL, id, filename); err != nil {
			return fmt.Errorf("set profile image: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return previous.String, nil
}

// checkAvailable fails with ErrUsernameTaken or ErrEmailTaken if another account
// (any id other than self) holds one of the given values. Nil values are skipped.
func (s *Store) checkAvailable(ctx context.Context, self uuid.UUID, username, email *string) error {
	var usernameTaken, emailTaken bool
	if err := s.db.QueryRow(ctx, availabilitySQL, username, email, self).Scan(&usernameTaken, &emailTaken); err != nil {
		return fmt.Errorf("check availability: %w", err)
	}

	switch {
	case usernameTaken:
		return ErrUsernameTaken
	case emailTaken:
		return ErrEmailTaken
	}
	return nil
}

// conflictError maps a unique violation on one of the users constraints to its
// domain error, or returns nil.
func conflictError(err error) error {
	if !db.IsUniqueViolation(err) {
		return nil
	}

	switch db.ViolatedConstraint(err) {
	case usernameConstraint:
		return ErrUsernameTaken
	case emailConstraint:
		return ErrEmailTaken
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u     User
		image pgtype.Text
	)

	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&image,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.ProfileImage = image.String
	return &u, nil
}
