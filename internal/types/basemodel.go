package types

import (
	"context"
	"time"
)

// BaseModel is a base model for all domain models that need to be persisted
// in the database. OwnerID scopes every record to the authenticated user that
// created it; cross-owner access always fails as not-found.
type BaseModel struct {
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		OwnerID:   GetUserID(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
