// Package orders is the order-lookup collaborator: the wizard resolves a
// purchase against the e-commerce backend to pick up delivery metadata before
// submission. The engine itself never touches this package.
package orders

import (
	"context"
	"errors"
)

// ErrNotFound reports that no order exists for the given number.
var ErrNotFound = errors.New("orders: order not found")

// Order is the subset of the backend's order record the wizard needs.
type Order struct {
	Number          string   `json:"number"`
	Email           string   `json:"email,omitempty"`
	DeliveryAddress string   `json:"deliveryAddress,omitempty"`
	Items           []string `json:"items,omitempty"`
}

// Lookup resolves an order by its number.
type Lookup interface {
	Order(ctx context.Context, number string) (Order, error)
}

// Static is an in-memory Lookup for tests and demos.
type Static map[string]Order

// Order implements Lookup.
func (s Static) Order(_ context.Context, number string) (Order, error) {
	order, ok := s[number]
	if !ok {
		return Order{}, ErrNotFound
	}
	return order, nil
}
