package order

import (
	"context"

	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

type ListFilter struct {
	Status        string
	CustomerEmail string
	Page          int
	Limit         int
}

type Repository interface {
	// -------- Catalog lookups --------
	GetProductWithSizes(
		ctx context.Context,
		productID uint,
	) (*models.Product, error)

	// -------- Order (create) --------
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	// -------- Order (read) --------
	GetOrderByID(
		ctx context.Context,
		id uint,
	) (*models.Order, error)

	ListOrders(
		ctx context.Context,
		f ListFilter,
	) ([]models.Order, int64, error)

	// -------- Order (state change) --------
	// TransitionStatus reads the persisted status under a row lock, asks
	// apply for the next one and saves it, all in one transaction.
	TransitionStatus(
		ctx context.Context,
		id uint,
		apply func(current Status) (Status, error),
	) (*models.Order, error)

	DeleteOrder(
		ctx context.Context,
		id uint,
	) error
}
