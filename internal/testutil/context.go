package testutil

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
