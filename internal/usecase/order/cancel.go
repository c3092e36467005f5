package order

import (
	"context"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

type CancelOrder struct {
	update *UpdateStatus
}

func NewCancelOrder(update *UpdateStatus) *CancelOrder {
	return &CancelOrder{update: update}
}

// Execute is the dedicated cancel endpoint: the target status is implicitly
// CANCELLED, eligibility rules are shared with UpdateStatus.
func (uc *CancelOrder) Execute(
	ctx context.Context,
	orderID uint,
	isAdmin bool,
) (*models.Order, error) {
	return uc.update.Execute(ctx, orderID, domain.StatusCancelled, isAdmin)
}
