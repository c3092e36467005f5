package order

import "github.com/shopspring/decimal"

// ShippingFee is the flat delivery fee in VND, charged on top of the order
// total.
var ShippingFee = decimal.NewFromInt(30000)
