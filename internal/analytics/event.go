package analytics

import "github.com/shopspring/decimal"

// AddToCartEvent mirrors the storefront analytics export: who added what to
// their cart, at which price point.
type AddToCartEvent struct {
	CustomerID   uint            `json:"userId"`
	CustomerName string          `json:"userName"`
	SessionID    string          `json:"sessionId,omitempty"`
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}
