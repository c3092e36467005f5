package models

import "time"

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:500" json:"address"`

	// Legacy rows created through order checkout have no password.
	PasswordHash *string `gorm:"size:255" json:"-"`

	Role string `gorm:"size:20;default:'CUSTOMER'" json:"role"`

	Orders []Order `gorm:"constraint:OnUpdate:CASCADE;" json:"orders,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
