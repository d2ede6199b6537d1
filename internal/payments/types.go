package payments

// Fixed pricing policy: every note costs the same server-side price.
// Amounts are in the smallest currency unit (900 paise = ₹9).
// Client-supplied amounts are never trusted.
const (
	OrderAmount   = 900
	OrderCurrency = "INR"
)

// Order is the opaque handle returned by the payment gateway for a purchase
// attempt. It is transient: nothing is persisted locally when it is created.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Confirmation is the client-submitted proof of payment. It is untrusted
// until it passes the Verifier.
type Confirmation struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Empty reports whether no confirmation was supplied at all, as opposed to a
// supplied-but-invalid one. Callers surface the two cases differently.
func (c *Confirmation) Empty() bool {
	return c == nil || (c.OrderID == "" && c.PaymentID == "" && c.Signature == "")
}
