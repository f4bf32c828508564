package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdminUser is a staff account allowed into the console.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines data access for admin accounts.
type Repository interface {
	// CreateUser persists a new admin account.
	CreateUser(ctx context.Context, user *AdminUser) error

	// GetUserByEmail retrieves an admin account by email.
	GetUserByEmail(ctx context.Context, email string) (*AdminUser, error)
}
