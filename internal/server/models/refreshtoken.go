package models

import "time"

// RefreshToken is a server-stored, single-use token that mints a new
// access token. It is deleted when rotated.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// ExpiredAt reports whether the token can no longer be used at now.
func (t *RefreshToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.Expires)
}
