package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSend(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := NewWebhook(5 * time.Second)
	err := w.Send(context.Background(), srv.URL, Payload{Text: "Your reminder 'Taxes' due 2025-04-15 is approaching"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	var decoded Payload
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "Your reminder 'Taxes' due 2025-04-15 is approaching", decoded.Text)
}

func TestWebhookSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	w := NewWebhook(5 * time.Second)
	err := w.Send(context.Background(), srv.URL, Payload{Text: "hello"})
	assert.Error(t, err)
}

func TestWebhookSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately closed

	w := NewWebhook(time.Second)
	err := w.Send(context.Background(), srv.URL, Payload{Text: "hello"})
	assert.Error(t, err)
}
