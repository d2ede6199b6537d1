package users

import "time"

// User is the item stored in the Users DynamoDB table. PasswordHash is a
// bcrypt hash; the plaintext password is never persisted.
type User struct {
	Username     string    `dynamodbav:"username"` // PK
	Email        string    `dynamodbav:"email"`
	PasswordHash string    `dynamodbav:"password_hash"`
	IsAdmin      bool      `dynamodbav:"is_admin"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}
