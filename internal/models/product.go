package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	Img         string `gorm:"size:500" json:"img"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE;" json:"category"`

	Sizes []ProductSize `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sizes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductSize is a price variant. The label is unique per product, not
// globally.
type ProductSize struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint   `gorm:"uniqueIndex:idx_product_size" json:"productId"`
	Size      string `gorm:"size:20;uniqueIndex:idx_product_size" json:"size"`

	Price decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}
