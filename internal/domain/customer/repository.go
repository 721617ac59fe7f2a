package customer

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Repository defines the interface for customer data access
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter *types.PartyFilter) ([]*Customer, error)
	Count(ctx context.Context, filter *types.PartyFilter) (int, error)
}
