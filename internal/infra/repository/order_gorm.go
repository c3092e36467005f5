package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *OrderGormRepository) GetProductWithSizes(
	ctx context.Context,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Sizes").
		First(&product, productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Order (create / read)
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *OrderGormRepository) GetOrderByID(
	ctx context.Context,
	id uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Sizes").
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Order, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.CustomerEmail != "" {
		q = q.Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.email = ?", f.CustomerEmail)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Sizes").
		Order("orders.created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// --------------------------------------------------
// Order (state change)
// --------------------------------------------------

func (r *OrderGormRepository) TransitionStatus(
	ctx context.Context,
	id uint,
	apply func(current domain.Status) (domain.Status, error),
) (*models.Order, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite (used in tests) has no row locks.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var o models.Order
		if err := q.First(&o, id).Error; err != nil {
			return err
		}

		next, err := apply(domain.Status(o.Status))
		if err != nil {
			return err
		}

		return tx.Model(&o).Update("status", string(next)).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetOrderByID(ctx, id)
}

func (r *OrderGormRepository) DeleteOrder(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
