package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/noteskart/noteskart/internal/aws"
	"github.com/noteskart/noteskart/internal/notes"
)

// Processor handles SQS purchase events and records fulfilment: it bumps the
// note's purchase counter and emits a CloudWatch metric.
type Processor struct {
	noteStore *notes.Store
	metrics   *aws.MetricsPublisher
}

// NewProcessor creates a new worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, notesTable string) *Processor {
	return &Processor{
		noteStore: notes.NewStore(clients.DynamoDB, notesTable),
		metrics:   aws.NewMetricsPublisher(clients.CloudWatch, "NotesKart"),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg PurchaseMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] received purchase order=%s note=%s corr=%s",
		msg.OrderID, msg.NoteID, msg.CorrelationID)

	// The note must exist; a purchase event for an unknown note is a bug and
	// belongs in the DLQ.
	note, err := p.noteStore.Get(ctx, msg.NoteID)
	if err != nil {
		return fmt.Errorf("failed to fetch note: %w", err)
	}
	if note == nil {
		return fmt.Errorf("note not found: %s", msg.NoteID)
	}

	if err := p.noteStore.IncrementPurchases(ctx, msg.NoteID); err != nil {
		return fmt.Errorf("failed to increment purchases: %w", err)
	}

	// The metric is advisory; a failed datapoint is not worth a retry that
	// would double-count the purchase above.
	if err := p.metrics.RecordPurchase(ctx, msg.NoteID); err != nil {
		log.Printf("[worker] metric publish failed for note=%s: %v", msg.NoteID, err)
	}

	log.Printf("[worker] recorded purchase order=%s note=%s", msg.OrderID, msg.NoteID)
	return nil
}
