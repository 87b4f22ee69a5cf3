package repository

import (
	"context"

	"github.com/billora/billora/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ownedBy returns a filter scoping a query to the owner in the context.
// Cross-owner reads therefore surface as not-found, never as forbidden.
func ownedBy(ctx context.Context) bson.M {
	return bson.M{"owner_id": types.GetUserID(ctx)}
}

// ownedByID returns a filter matching one owned document by id
func ownedByID(ctx context.Context, id string) bson.M {
	filter := ownedBy(ctx)
	filter["_id"] = id
	return filter
}
