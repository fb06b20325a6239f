// Package mailer delivers transactional email. Production uses Postmark;
// development falls back to a sender that writes each message to disk.
// Delivery happens asynchronously from the queue consumer, so no HTTP
// request ever blocks on an email provider.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidMessage is returned when a message fails validation.
	ErrInvalidMessage = errors.New("invalid email message")
	// ErrSendFailed wraps provider-side delivery failures.
	ErrSendFailed = errors.New("failed to send email")
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Sender delivers a single email message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outgoing email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"` // provider-side categorization
}

// Validate checks the message is deliverable.
func (m Message) Validate() error {
	if !emailRe.MatchString(m.To) {
		return fmt.Errorf("%w: recipient %q", ErrInvalidMessage, m.To)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidMessage)
	}
	if m.BodyHTML == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}
	return nil
}
