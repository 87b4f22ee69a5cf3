package product

import "context"

// Repository defines the interface for product persistence operations,
// scoped to the owner in the context.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error

	// List returns the owner's products sorted by creation time descending,
	// optionally filtered by a case-insensitive name search
	List(ctx context.Context, search string) ([]*Product, error)
}
