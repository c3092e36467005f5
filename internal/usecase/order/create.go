package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	Customer domain.CustomerInput
	Items    []OrderItemInput
	Notes    string
}

type OrderItemInput struct {
	ProductID uint
	Size      string
	Price     decimal.Decimal
	Quantity  int
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo      domain.Repository
	directory domain.CustomerDirectory
}

func NewCreateOrder(
	repo domain.Repository,
	directory domain.CustomerDirectory,
) *CreateOrder {
	return &CreateOrder{
		repo:      repo,
		directory: directory,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*models.Order, error) {

	// 1. Resolve the owning customer through the user service. This is a
	// hard dependency: without a customer there is no order.
	customer, err := uc.resolveCustomer(ctx, in.Customer)
	if err != nil {
		return nil, err
	}

	// 2. Total from the catalog's current prices. The client-submitted
	// price is stored per line as a snapshot but never feeds the total.
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))

	for _, item := range in.Items {
		product, err := uc.repo.GetProductWithSizes(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusinessMsg(
					"product_not_found",
					fmt.Sprintf("Product with ID %d not found", item.ProductID),
				)
			}
			return nil, err
		}

		size, ok := findSize(product, item.Size)
		if !ok {
			return nil, httperr.ErrBusinessMsg(
				"size_not_found",
				fmt.Sprintf("Size %s not found for product %s", item.Size, product.Name),
			)
		}

		total = total.Add(size.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))

		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	// 3. One transaction: order row plus all line items, or nothing.
	o := &models.Order{
		CustomerID: customer.ID,
		Status:     string(domain.InitialStatus()),
		Total:      total,
		Shipping:   domain.ShippingFee,
		Notes:      in.Notes,
		Items:      items,
	}

	if err := uc.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	return uc.repo.GetOrderByID(ctx, o.ID)
}

func (uc *CreateOrder) resolveCustomer(
	ctx context.Context,
	in domain.CustomerInput,
) (*models.Customer, error) {

	customer, err := uc.directory.FindByEmail(ctx, in.Email)
	if err == nil {
		return customer, nil
	}

	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, httperr.ErrBusiness("user_service_unavailable")
	}

	customer, err = uc.directory.Create(ctx, in)
	if err != nil {
		return nil, httperr.ErrBusiness("user_service_unavailable")
	}
	return customer, nil
}

func findSize(product *models.Product, label string) (*models.ProductSize, bool) {
	for i := range product.Sizes {
		if product.Sizes[i].Size == label {
			return &product.Sizes[i], true
		}
	}
	return nil, false
}
