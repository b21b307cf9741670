package queue

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	params map[string]string
	err    error
}

func (f *fakeSender) Send(_ context.Context, params map[string]string) error {
	f.params = params
	return f.err
}

func sampleEvent() BookingRequestedEvent {
	return BookingRequestedEvent{
		RequestID:         "req-1",
		SessionID:         "sess-1",
		BookerName:        "Ada Smith",
		BookerEmail:       "ada@example.com",
		SalesContactName:  "Sam Sales",
		SalesContactEmail: "sam@example.com",
		EventName:         "Monaco GP",
		TotalDisplay:      "£398",
		Message:           "details",
	}
}

func TestEmailParams(t *testing.T) {
	p := EmailParams(sampleEvent())
	assert.Equal(t, "Sam Sales", p["to_name"])
	assert.Equal(t, "sam@example.com", p["to_email"])
	assert.Equal(t, "Ada Smith", p["from_name"])
	assert.Equal(t, "ada@example.com", p["reply_to"])
	assert.Equal(t, "req-1", p["request_id"])
	assert.Equal(t, "£398", p["total"])
	assert.Equal(t, "details", p["message_body"])
}

func TestHandleMessage(t *testing.T) {
	t.Cleanup(func() { _ = os.RemoveAll("logs") })
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	sender := &fakeSender{}
	require.NoError(t, handleMessage(body, sender))
	assert.Equal(t, "Monaco GP", sender.params["event_name"])

	sender.err = errors.New("widget down")
	assert.Error(t, handleMessage(body, sender))

	assert.Error(t, handleMessage([]byte("{not json"), &fakeSender{}))
}
