// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into outgoing email.
package queue

// Queue names. Each event type gets its own durable queue.
const (
	UserRegisteredQueue        = "user.registered"
	RegistrationConfirmedQueue = "registration.confirmed"
)

// UserRegisteredEvent is published when a new account is created. The
// consumer sends the welcome email from it without touching the database.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	RegisteredAt string `json:"registered_at"`
}

// RegistrationConfirmedEvent is published when a user registers for a
// catalog event. It carries the event summary so the confirmation email
// needs no extra catalog round trip.
type RegistrationConfirmedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	UserID         uint64 `json:"user_id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	EventID        string `json:"event_id"`
	EventTitle     string `json:"event_title"`
	EventDate      string `json:"event_date"`
	EventTime      string `json:"event_time"`
	EventLocation  string `json:"event_location"`
	ConfirmedAt    string `json:"confirmed_at"`
}
