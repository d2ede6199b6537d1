package main

// PurchaseMessage is the payload sent from API -> SQS -> Worker after a
// download was authorized.
type PurchaseMessage struct {
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	NoteID        string `json:"note_id"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
