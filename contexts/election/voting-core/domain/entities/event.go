package entities

import "time"

// Event is a single election instance. Password is the plaintext voting
// password; it only leaves the core on creation and on a successful login.
type Event struct {
	EventID   string
	Name      string
	Password  string
	CreatedAt time.Time
}

// EventSummary is the password-free view of an event.
type EventSummary struct {
	EventID   string
	Name      string
	CreatedAt time.Time
}

func (e Event) Summary() EventSummary {
	return EventSummary{
		EventID:   e.EventID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	}
}
