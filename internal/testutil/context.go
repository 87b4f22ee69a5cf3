package testutil

import (
	"context"

	"github.com/billora/billora/internal/types"
)

const (
	// TestUserID is the owner baked into the default test context
	TestUserID    = "user_test_owner"
	TestUserEmail = "owner@example.com"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, TestUserID)
	ctx = context.WithValue(ctx, types.CtxUserEmail, TestUserEmail)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// SetupContextForUser builds a context authenticated as a different owner,
// for cross-owner isolation tests
func SetupContextForUser(userID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
