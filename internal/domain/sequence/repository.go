package sequence

import "context"

// Repository is the store side of the allocator
type Repository interface {
	// Next atomically increments the named counter and returns the new value,
	// creating the counter at zero first if it does not exist. It must be a
	// single store-level operation: concurrent callers never see the same value.
	Next(ctx context.Context, name string) (int64, error)

	// Current returns the last allocated value, 0 if nothing was allocated yet
	Current(ctx context.Context, name string) (int64, error)
}
