package seller

import "context"

// Repository defines the interface for seller persistence operations,
// scoped to the owner in the context.
type Repository interface {
	Create(ctx context.Context, seller *Seller) error
	Get(ctx context.Context, id string) (*Seller, error)
	Update(ctx context.Context, seller *Seller) error
	Delete(ctx context.Context, id string) error

	// List returns the owner's sellers sorted by default flag then creation
	// time descending, optionally filtered by business name search
	List(ctx context.Context, search string) ([]*Seller, error)

	// Count returns the number of sellers the owner has
	Count(ctx context.Context) (int, error)

	// GetDefault returns the seller flagged as default, else the most
	// recently created seller, else ErrNotFound
	GetDefault(ctx context.Context) (*Seller, error)

	// ClearDefault unsets the default flag on all of the owner's sellers
	// except the one with the given ID (pass "" to clear all)
	ClearDefault(ctx context.Context, exceptID string) error
}
