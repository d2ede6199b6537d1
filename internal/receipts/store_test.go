package receipts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// simpleMock is a very small in-memory mock keyed by order_id.
type simpleMock struct {
	mu    sync.Mutex
	table map[string]map[string]types.AttributeValue
}

func newSimpleMock() *simpleMock {
	return &simpleMock{table: map[string]map[string]types.AttributeValue{}}
}

func (m *simpleMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keyAttr := params.Item["order_id"]
	if keyAttr == nil {
		return nil, errors.New("missing key")
	}
	k := keyAttr.(*types.AttributeValueMemberS).Value
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_id)" {
		if _, ok := m.table[k]; ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *simpleMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := params.Key["order_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.table[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *simpleMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := params.Key["order_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.table[k]
	if !ok {
		// conditional transitions fail on missing items
		if params.ConditionExpression != nil {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return nil, errors.New("item not found")
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "#s = :expected" {
		curr, ok := item["status"].(*types.AttributeValueMemberS)
		if !ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
		expected := params.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS).Value
		if curr.Value != expected {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	if v, ok := params.ExpressionAttributeValues[":consumed"]; ok {
		item["status"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	m.table[k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *simpleMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	return &dyn.ScanOutput{}, nil
}

func TestCreateVerified_Success(t *testing.T) {
	mock := newSimpleMock()
	store := NewStore(mock, "receipts", 48*time.Hour)

	if err := store.CreateVerified(context.Background(), "order-1", "pay-1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	rec, err := store.Get(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected receipt")
	}
	if rec.Status != StatusVerified {
		t.Fatalf("expected VERIFIED, got %s", rec.Status)
	}
	if rec.PaymentID != "pay-1" {
		t.Fatalf("payment id mismatch: %s", rec.PaymentID)
	}
	if rec.ExpiresAt == 0 {
		t.Fatalf("expected TTL to be set")
	}
}

func TestCreateVerified_Duplicate(t *testing.T) {
	mock := newSimpleMock()
	store := NewStore(mock, "receipts", 48*time.Hour)

	if err := store.CreateVerified(context.Background(), "order-1", "pay-1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := store.CreateVerified(context.Background(), "order-1", "pay-1")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestConsume_Lifecycle(t *testing.T) {
	mock := newSimpleMock()
	store := NewStore(mock, "receipts", 48*time.Hour)

	if err := store.CreateVerified(context.Background(), "order-1", "pay-1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Consume(context.Background(), "order-1"); err != nil {
		t.Fatalf("first consume: %v", err)
	}

	rec, err := store.Get(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != StatusConsumed {
		t.Fatalf("expected CONSUMED, got %s", rec.Status)
	}

	// replayed confirmation: check-and-set fails
	if err := store.Consume(context.Background(), "order-1"); !errors.Is(err, ErrStatusMismatch) {
		t.Fatalf("expected ErrStatusMismatch on replay, got %v", err)
	}
}

func TestConsume_MissingReceipt(t *testing.T) {
	mock := newSimpleMock()
	store := NewStore(mock, "receipts", 48*time.Hour)

	if err := store.Consume(context.Background(), "order-unknown"); !errors.Is(err, ErrStatusMismatch) {
		t.Fatalf("expected ErrStatusMismatch, got %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	mock := newSimpleMock()
	store := NewStore(mock, "receipts", 48*time.Hour)

	rec, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for missing receipt")
	}
}
