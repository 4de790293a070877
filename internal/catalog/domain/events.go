package domain

import "github.com/shopspring/decimal"

// ShoppingCartItem is an immutable snapshot of one cart line taken by the
// order service at cart-completion time. This service never mutates it.
type ShoppingCartItem struct {
	ProductID  uint64          `json:"productId"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type ShoppingCart struct {
	ID         uint64             `json:"id"`
	UserID     string             `json:"userId"`
	Completed  bool               `json:"completed"`
	Items      []ShoppingCartItem `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

// OrderValidationRequested arrives on the validate-items topic. The id
// correlates to the order aggregate downstream, not to any product. The
// success/failure states are opaque strings owned by the order service and
// are forwarded verbatim in the outcome.
type OrderValidationRequested struct {
	ID           uint64       `json:"id"`
	ShoppingCart ShoppingCart `json:"shoppingCart"`
	SuccessState string       `json:"successState"`
	FailureState string       `json:"failureState"`
}

// StockRestoreRequested arrives on the restore-stock topic when an order is
// rolled back downstream. Errors is informational context from the upstream
// rejection and is not consumed here.
type StockRestoreRequested struct {
	ID           uint64       `json:"id"`
	ShoppingCart ShoppingCart `json:"shoppingCart"`
	Errors       []string     `json:"errors,omitempty"`
}

// OrderUpdateRequested is the single event this service publishes, carrying
// the order-state transition for a processed validation request.
type OrderUpdateRequested struct {
	ID     uint64   `json:"id"`
	State  string   `json:"state"`
	Errors []string `json:"errors,omitempty"`
}
