package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/eventflow-api/internal/mailer"
)

type recordingSender struct {
	sent []mailer.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestHandleWelcome(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(UserRegisteredEvent{
		UserID:    1,
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Lee",
	})
	require.NoError(t, err)

	sender := &recordingSender{}
	require.NoError(t, handleWelcome(sender, "https://app.example.com", body))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Welcome to EventFlow!", msg.Subject)
	assert.Contains(t, msg.BodyHTML, "Hi Alice")
}

func TestHandleConfirmation(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(RegistrationConfirmedEvent{
		RegistrationID: 9,
		UserID:         1,
		Email:          "alice@example.com",
		FirstName:      "Alice",
		EventID:        "ev1",
		EventTitle:     "Science Fair",
		EventDate:      "2026-10-01",
		EventTime:      "10:00",
		EventLocation:  "Main Hall",
	})
	require.NoError(t, err)

	sender := &recordingSender{}
	require.NoError(t, handleConfirmation(sender, "https://app.example.com", body))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Event Registration Confirmation - Science Fair", msg.Subject)
	assert.Contains(t, msg.BodyHTML, "Main Hall")
}

func TestHandleWelcome_BadPayload(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	assert.Error(t, handleWelcome(sender, "https://app.example.com", []byte("{not json")))
	assert.Empty(t, sender.sent)
}

func TestHandleConfirmation_SenderFailurePropagates(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(RegistrationConfirmedEvent{
		Email:      "alice@example.com",
		FirstName:  "Alice",
		EventID:    "ev1",
		EventTitle: "Science Fair",
	})
	require.NoError(t, err)

	sender := &recordingSender{err: mailer.ErrSendFailed}
	assert.ErrorIs(t, handleConfirmation(sender, "https://app.example.com", body), mailer.ErrSendFailed)
}
