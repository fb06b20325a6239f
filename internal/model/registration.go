package model

import "time"

// Registration statuses stored in event_registrations.status.
const (
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// EventRegistration models a row in the `event_registrations` table. The
// event itself lives in the external catalog; only its identifier is
// persisted locally.
//
// Fields:
//
//	ID               – primary key identifier.
//	UserID           – registering user.
//	EventID          – catalog identifier of the event.
//	RegistrationDate – when the registration was made.
//	Status           – "confirmed" or "cancelled".
type EventRegistration struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	EventID          string    `json:"event_id"`
	RegistrationDate time.Time `json:"registration_date"`
	Status           string    `json:"status"`
}
