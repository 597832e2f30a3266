// Package users implements the account domain: registered users and their password hashes.
// The hash is only returned by FindByEmail and never serialized.
package users

import "time"

// User is a registered account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to register a user.
// PasswordHash must already be an encoded argon2id hash.
type CreateCommand struct {
	Email        string
	Name         *string
	PasswordHash string
}

// Credentials pairs a user with the stored password hash for login verification.
type Credentials struct {
	User         User
	PasswordHash string
}
