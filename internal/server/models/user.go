// Package models defines the rows the sync backend persists.
package models

import "time"

// User is an account. Salt and Verifier come from the client's key
// derivation; the password itself never reaches the backend.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
