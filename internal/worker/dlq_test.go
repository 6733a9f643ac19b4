package worker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDLQEntry_LiftsEmailRecipient(t *testing.T) {
	payload, err := json.Marshal(EmailJobPayload{
		ToEmail: "ana@cafe.test",
		Subject: "Restablecer contraseña",
		Body:    "hola",
	})
	require.NoError(t, err)

	job := Job{Type: "email", Payload: payload, Attempts: maxAttempts}
	entry := newDLQEntry(QueueEmail, job, "smtp timeout")

	assert.Equal(t, QueueEmail, entry.OriginalQueue)
	assert.Equal(t, "email", entry.JobType)
	assert.Equal(t, "ana@cafe.test", entry.Recipient)
	assert.Equal(t, "smtp timeout", entry.Reason)
	assert.Equal(t, maxAttempts, entry.Attempts)
	assert.False(t, entry.FailedAt.IsZero())
	assert.JSONEq(t, string(payload), string(entry.Payload))
}

func TestNewDLQEntry_MalformedPayloadKeepsEntry(t *testing.T) {
	job := Job{Type: "email", Payload: json.RawMessage(`{not json`), Attempts: 1}
	entry := newDLQEntry(QueueEmail, job, "bad payload")

	// The raw payload is preserved for inspection even when the recipient
	// cannot be extracted.
	assert.Empty(t, entry.Recipient)
	assert.Equal(t, json.RawMessage(`{not json`), entry.Payload)
}

func TestNewDLQEntry_NonEmailJobHasNoRecipient(t *testing.T) {
	job := Job{Type: "sms", Payload: json.RawMessage(`{"to_email":"x@y.test"}`)}
	entry := newDLQEntry("jobs:sms", job, "no handler")

	assert.Equal(t, "jobs:sms", entry.OriginalQueue)
	assert.Empty(t, entry.Recipient)
}
