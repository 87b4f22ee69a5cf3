package customer

import "context"

// Repository defines the interface for customer persistence operations,
// scoped to the owner in the context.
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id string) error

	// List returns the owner's customers sorted by creation time
	// descending, optionally filtered by a case-insensitive name search
	List(ctx context.Context, search string) ([]*Customer, error)
}
