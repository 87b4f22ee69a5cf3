package user

import (
	"time"

	ierr "github.com/billora/billora/internal/errors"
)

// User is an account that owns sellers, customers, products and invoices.
// Users are not owner-scoped themselves; email is globally unique.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ierr.NewError("email is required").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	if u.PasswordHash == "" {
		return ierr.NewError("password hash is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
