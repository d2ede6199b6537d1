package handlers

import (
	"time"

	"github.com/noteskart/noteskart/internal/aws"
	"github.com/noteskart/noteskart/internal/payments"
)

// HandlerConfig groups dependencies for the route handlers.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI
	S3Client       aws.S3API
	Region         string

	NotesTable    string
	UsersTable    string
	ReceiptsTable string
	FilesBucket   string
	QueueURL      string

	Gateway       payments.Gateway
	PaymentSecret string

	// SingleUseReceipts enables the hardened variant: each verified order
	// releases exactly one download. Off by default to match the original
	// stateless behavior.
	SingleUseReceipts bool
	TTLWindow         time.Duration
}
