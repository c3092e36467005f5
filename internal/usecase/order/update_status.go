package order

import (
	"context"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

type UpdateStatus struct {
	repo domain.Repository
}

func NewUpdateStatus(repo domain.Repository) *UpdateStatus {
	return &UpdateStatus{repo: repo}
}

// Execute moves the order to target, re-reading the persisted status under a
// row lock so concurrent updates serialize instead of racing.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	orderID uint,
	target domain.Status,
	isAdmin bool,
) (*models.Order, error) {

	if !domain.Valid(target) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	return uc.repo.TransitionStatus(ctx, orderID, func(current domain.Status) (domain.Status, error) {
		if target == domain.StatusCancelled {
			if err := domain.CanCancel(current, isAdmin); err != nil {
				return "", err
			}
			return domain.StatusCancelled, nil
		}

		if err := domain.CanTransition(current, target); err != nil {
			return "", err
		}
		return target, nil
	})
}
