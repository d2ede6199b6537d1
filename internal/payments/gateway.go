package payments

import (
	"context"
	"errors"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements Gateway against the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds a gateway client. timeout bounds each gateway
// call; a timed-out call surfaces as an ordinary gateway error (retryable).
func NewRazorpayGateway(keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	if timeout > 0 {
		client.SetTimeout(int16(timeout.Seconds()))
	}
	return &RazorpayGateway{client: client}
}

// CreateOrder submits the order to Razorpay. The SDK does not take a context;
// cancellation is covered by the client timeout set at construction.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("gateway response missing order id")
	}
	return &Order{
		OrderID:  id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}
