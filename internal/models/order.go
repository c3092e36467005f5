package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are plain JSON numbers on the wire, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `json:"customerId"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE;" json:"customer"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	// Total is computed from catalog prices at creation and never changes
	// afterwards. Shipping is a flat fee charged on top of it.
	Total    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	Shipping decimal.Decimal `gorm:"type:decimal(12,2)" json:"shipping"`

	Notes string `gorm:"size:500" json:"notes"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID uint `json:"orderId"`

	ProductID uint    `json:"productId"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE;" json:"product"`

	Size     string `gorm:"size:20" json:"size"`
	Quantity int    `gorm:"not null" json:"quantity"`

	// Price snapshot: the unit price submitted with the order, kept as-is
	// even when the catalog price changes later.
	Price decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}
