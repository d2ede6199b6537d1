package payments

import (
	"context"
	"errors"
	"fmt"
)

// ErrGateway indicates the payment gateway call failed (network, auth, bad
// request). The attempt is retryable; nothing was retained locally.
var ErrGateway = errors.New("payment gateway request failed")

// Gateway is the narrow slice of the payment provider the order service needs.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}

// Service creates gateway orders for note purchases.
type Service struct {
	gateway  Gateway
	amount   int64
	currency string
}

// NewService returns a Service with the fixed pricing policy.
func NewService(gateway Gateway) *Service {
	return &Service{
		gateway:  gateway,
		amount:   OrderAmount,
		currency: OrderCurrency,
	}
}

// CreateOrder submits an order for the given note at the server-fixed price.
// The receipt is derived deterministically from the note id. On gateway
// failure the error wraps ErrGateway and no order is retained.
func (s *Service) CreateOrder(ctx context.Context, noteID string) (*Order, error) {
	receipt := "receipt_order_" + noteID
	order, err := s.gateway.CreateOrder(ctx, s.amount, s.currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return order, nil
}
