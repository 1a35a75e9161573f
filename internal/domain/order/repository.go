package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/logistics/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	// FindOpenByCustomer returns every non-cancelled order for a customer,
	// ordered by creation time. This is the allocation fan-out input; the
	// caller treats the result as one immutable snapshot.
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, o *Order) error
	SaveWithLock(ctx context.Context, o *Order) error
	// SaveAllocations persists recomputed down payments and remaining
	// balances for a customer's orders in a single transaction. Partial
	// allocation would break the aggregate-sum invariant, so the update is
	// all-or-nothing.
	SaveAllocations(ctx context.Context, orders []Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	NextOrderNumber(ctx context.Context) (string, error)
}
