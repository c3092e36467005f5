package order

import (
	"context"
	"errors"

	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

// ErrCustomerNotFound is a clean miss on lookup-by-email: the order flow
// answers it by creating the customer. Any other directory error aborts the
// order entirely.
var ErrCustomerNotFound = errors.New("customer not found")

type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerDirectory is the user service seen from the order service. Kept as
// an interface so the synchronous cross-service call can be faked in tests.
type CustomerDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, in CustomerInput) (*models.Customer, error)
}
