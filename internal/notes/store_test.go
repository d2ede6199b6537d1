package notes

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory mock keyed by note_id.
type mockDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := params.Item["note_id"]
	if !ok {
		return nil, errors.New("no primary key in put item")
	}
	pk := v.(*types.AttributeValueMemberS).Value
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(note_id)" {
		if _, exists := m.items[pk]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pk := params.Key["note_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pk := params.Key["note_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[pk]
	if !ok {
		return nil, errors.New("item not found")
	}
	// naive apply of the purchases increment expression
	if _, ok := params.ExpressionAttributeValues[":inc"]; ok {
		current := 0
		if v, ok := item["purchases"].(*types.AttributeValueMemberN); ok {
			current, _ = strconv.Atoi(v.Value)
		}
		item["purchases"] = &types.AttributeValueMemberN{Value: strconv.Itoa(current + 1)}
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	m.items[pk] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &dyn.ScanOutput{Count: int32(len(m.items))}
	if params.Select == types.SelectCount {
		return out, nil
	}
	for _, item := range m.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func TestCreateAndGet(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "notes")

	note := Note{
		NoteID:      "note-1",
		Title:       "Operating Systems",
		Owner:       "faizan",
		Description: "unit 3 summary",
		FileURL:     "https://files.example.com/notes/note-1/os.pdf",
		FileName:    "os.pdf",
	}
	if err := store.Create(context.Background(), note); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got, err := store.Get(context.Background(), "note-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected note, got nil")
	}
	if got.Title != note.Title || got.FileURL != note.FileURL {
		t.Fatalf("stored note mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "notes")

	note := Note{NoteID: "note-1", Title: "t", Owner: "o", Description: "d", FileURL: "u", FileName: "f"}
	if err := store.Create(context.Background(), note); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := store.Create(context.Background(), note); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "notes")

	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing note, got %+v", got)
	}
}

func TestListAndCount(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "notes")

	for _, id := range []string{"n1", "n2", "n3"} {
		if err := store.Create(context.Background(), Note{NoteID: id, Title: id, Owner: "o", Description: "d", FileURL: "u", FileName: "f"}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	all, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(all))
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestIncrementPurchases(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "notes")

	if err := store.Create(context.Background(), Note{NoteID: "n1", Title: "t", Owner: "o", Description: "d", FileURL: "u", FileName: "f"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.IncrementPurchases(context.Background(), "n1"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := store.IncrementPurchases(context.Background(), "n1"); err != nil {
		t.Fatalf("increment: %v", err)
	}

	got, err := store.Get(context.Background(), "n1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Purchases != 2 {
		t.Fatalf("expected 2 purchases, got %d", got.Purchases)
	}
}
