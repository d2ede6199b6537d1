// Package paywall is the authorization checkpoint between "payment claimed"
// and "file released": no download is authorized without a verified payment.
package paywall

import (
	"context"
	"errors"
	"fmt"

	"github.com/noteskart/noteskart/internal/notes"
	"github.com/noteskart/noteskart/internal/payments"
	"github.com/noteskart/noteskart/internal/receipts"
)

// ErrNoteNotFound indicates the requested note does not exist.
var ErrNoteNotFound = errors.New("note not found")

// ErrMissingConfirmation indicates no payment confirmation was supplied at
// all. Distinct from ErrPaymentRejected so audit logs are unambiguous.
var ErrMissingConfirmation = errors.New("payment confirmation missing")

// ErrPaymentRejected indicates the supplied confirmation failed signature
// verification. The expected signature is never revealed.
var ErrPaymentRejected = errors.New("payment could not be verified")

// ErrReceiptConsumed indicates the confirmation was valid but its receipt was
// already used to release a download (single-use mode only).
var ErrReceiptConsumed = errors.New("payment receipt already consumed")

// Gate authorizes note downloads against verified payments.
//
// With a nil receipt store the gate is stateless, matching the original
// behavior: a valid confirmation can be replayed. With a receipt store each
// verified order releases exactly one download, enforced by an atomic
// check-and-set keyed by order id.
type Gate struct {
	notes    *notes.Store
	verifier *payments.Verifier
	receipts *receipts.Store // nil -> replayable confirmations
}

// NewGate builds a Gate. receiptStore may be nil to disable single-use receipts.
func NewGate(noteStore *notes.Store, verifier *payments.Verifier, receiptStore *receipts.Store) *Gate {
	return &Gate{
		notes:    noteStore,
		verifier: verifier,
		receipts: receiptStore,
	}
}

// AuthorizeDownload resolves the note, checks the confirmation, and returns
// the note's file URL unchanged. The note lookup happens first so an unknown
// note id fails with ErrNoteNotFound regardless of the confirmation.
func (g *Gate) AuthorizeDownload(ctx context.Context, noteID string, conf *payments.Confirmation) (string, error) {
	note, err := g.notes.Get(ctx, noteID)
	if err != nil {
		return "", fmt.Errorf("lookup note: %w", err)
	}
	if note == nil {
		return "", ErrNoteNotFound
	}

	if conf.Empty() {
		return "", ErrMissingConfirmation
	}
	if !g.verifier.Verify(conf.OrderID, conf.PaymentID, conf.Signature) {
		return "", ErrPaymentRejected
	}

	if g.receipts != nil {
		// The client may not have called /verifyPayment first; make sure a
		// VERIFIED record exists before the check-and-set. ErrAlreadyExists
		// just means verification already recorded it.
		if err := g.receipts.CreateVerified(ctx, conf.OrderID, conf.PaymentID); err != nil && !errors.Is(err, receipts.ErrAlreadyExists) {
			return "", fmt.Errorf("record receipt: %w", err)
		}
		if err := g.receipts.Consume(ctx, conf.OrderID); err != nil {
			if errors.Is(err, receipts.ErrStatusMismatch) {
				return "", ErrReceiptConsumed
			}
			return "", fmt.Errorf("consume receipt: %w", err)
		}
	}

	return note.FileURL, nil
}
