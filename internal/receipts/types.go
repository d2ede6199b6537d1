package receipts

import "time"

// Status values for receipt entries
const (
	StatusVerified = "VERIFIED"
	StatusConsumed = "CONSUMED"
)

// Receipt is the shape persisted in the receipts DynamoDB table. A receipt
// records that a gateway payment for an order was verified, so single-use
// mode can refuse to release the file twice for the same order.
type Receipt struct {
	OrderID   string    `dynamodbav:"order_id"` // PK
	PaymentID string    `dynamodbav:"payment_id"`
	Status    string    `dynamodbav:"status"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
	ExpiresAt int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}
