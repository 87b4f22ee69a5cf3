package user

import "context"

// Repository defines the interface for user persistence operations
type Repository interface {
	// Create creates a new user; a duplicate email fails with
	// ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
