package entities

import "time"

// Account is the plaintext view of a provisioned voter credential.
type Account struct {
	AccountID string
	Username  string
	Password  string
	EventID   string
	CreatedAt time.Time
}

// Session is returned by a successful login. EventPassword lets the voter
// open the ballot without a second lookup.
type Session struct {
	UserID        string
	EventID       string
	EventName     string
	EventPassword string
}
