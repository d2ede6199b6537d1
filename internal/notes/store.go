package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/noteskart/noteskart/internal/aws"
)

// ErrAlreadyExists indicates a create collided with an existing note id.
var ErrAlreadyExists = errors.New("note already exists")

// Store encapsulates operations on the notes table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new notes Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new note. note.NoteID must be set by the caller.
func (s *Store) Create(ctx context.Context, note Note) error {
	now := s.nowFunc()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	item, err := attributevalue.MarshalMap(note)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(note_id)"),
	}
	_, err = s.client.PutItem(ctx, input)
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get fetches a note by note_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, noteID string) (*Note, error) {
	key := map[string]types.AttributeValue{
		"note_id": &types.AttributeValueMemberS{Value: noteID},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var n Note
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, fmt.Errorf("unmarshal note: %w", err)
	}
	return &n, nil
}

// List returns every note in the table. The listing page is small enough
// that a full scan is acceptable here.
func (s *Store) List(ctx context.Context) ([]Note, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.tableName,
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result := make([]Note, 0, len(out.Items))
	for _, item := range out.Items {
		var n Note
		if err := attributevalue.UnmarshalMap(item, &n); err != nil {
			return nil, fmt.Errorf("unmarshal note: %w", err)
		}
		result = append(result, n)
	}
	return result, nil
}

// Count returns the total number of notes (admin dashboard).
func (s *Store) Count(ctx context.Context) (int, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.tableName,
		Select:    types.SelectCount,
	})
	if err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return int(out.Count), nil
}

// IncrementPurchases increases the purchase counter by 1 (called by the fulfilment worker).
func (s *Store) IncrementPurchases(ctx context.Context, noteID string) error {
	now := s.nowFunc()
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"note_id": &types.AttributeValueMemberS{Value: noteID},
		},
		UpdateExpression:          awsString("SET purchases = if_not_exists(purchases, :zero) + :inc, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":zero": &types.AttributeValueMemberN{Value: "0"}, ":inc": &types.AttributeValueMemberN{Value: "1"}, ":ua": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	}
	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		return fmt.Errorf("increment purchases: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
