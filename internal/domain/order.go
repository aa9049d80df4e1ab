package domain

import "time"

// OrderStatus is the lifecycle state of a simulated order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusFilled    OrderStatus = "FILLED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order is a simulated limit order. Orders are resolved synchronously within
// the call that creates them: PENDING exists only mid-call, and FILLED and
// CANCELLED are final.
type Order struct {
	ID          string
	Side        Side
	Price       float64 // requested limit price
	Qty         float64 // requested quantity
	Status      OrderStatus
	FilledQty   float64
	FilledPrice float64
	PlacedAt    time.Time
}

// Terminal reports whether the order has reached a final state.
func (o Order) Terminal() bool {
	return o.Status == StatusFilled || o.Status == StatusCancelled
}
