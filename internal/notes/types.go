package notes

import "time"

// Note represents the item stored in the Notes DynamoDB table.
// A note is immutable after upload apart from its purchase counter.
type Note struct {
	NoteID      string    `dynamodbav:"note_id"` // PK
	Title       string    `dynamodbav:"title"`
	Owner       string    `dynamodbav:"owner"`
	Description string    `dynamodbav:"description"`
	FileURL     string    `dynamodbav:"file_url"`  // retrievable blob location
	FileName    string    `dynamodbav:"file_name"` // original upload filename
	Purchases   int       `dynamodbav:"purchases,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"`
}
