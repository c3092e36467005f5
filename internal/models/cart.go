package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"uniqueIndex" json:"customerId"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CartItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CartID uint `gorm:"uniqueIndex:idx_cart_product_size" json:"cartId"`

	ProductID uint    `gorm:"uniqueIndex:idx_cart_product_size" json:"productId"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE;" json:"product"`

	Size     string `gorm:"size:20;uniqueIndex:idx_cart_product_size" json:"size"`
	Quantity int    `gorm:"not null" json:"quantity"`

	// Unit price captured when the item was added.
	Price decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
