package session

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for a bad email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks staff credentials. The production implementation is backed
// by the admin_users table; tests substitute their own.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (Identity, error)
}

type repoVerifier struct {
	repo Repository
}

// NewVerifier creates a Verifier that checks bcrypt hashes held by repo.
func NewVerifier(repo Repository) Verifier {
	return &repoVerifier{repo: repo}
}

func (v *repoVerifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	user, err := v.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{ID: user.ID.String(), Name: user.Name, Email: user.Email}, nil
}
