package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsWidgetPayload(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewEmailer(srv.URL, "svc", "tmpl", "pub")
	err := e.Send(context.Background(), map[string]string{
		"to_email": "sales@example.com",
		"message":  "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tmpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "sales@example.com", got.TemplateParams["to_email"])
}

func TestSendRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	e := NewEmailer(srv.URL, "svc", "tmpl", "pub")
	err := e.Send(context.Background(), nil)
	assert.Error(t, err)
}
