package nlu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasaClient_Respond(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"joins texts", `[{"recipient_id":"s1","text":"Hello!"},{"recipient_id":"s1","text":"How can I help?"}]`, "Hello!\n\nHow can I help?"},
		{"image placeholder", `[{"text":"Here is our site:"},{"image":"https://example.com/map.png"}]`, "Here is our site:\n\n[image]"},
		{"empty array", `[]`, msgNotSure},
		{"no text", `[{"custom":{}}]`, msgNoTextReplied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, rasaWebhookPath, r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)

				var body rasaRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "s1", body.Sender)
				assert.Equal(t, "hi", body.Message)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.reply))
			}))
			defer srv.Close()

			got, err := NewRasaClient(srv.URL+"/", time.Second).Respond(context.Background(), "s1", "hi")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestRasaClient_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewRasaClient(srv.URL, time.Second).Respond(context.Background(), "s1", "hi")
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("timeout", func(t *testing.T) {
		done := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-done:
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()
		defer close(done)

		start := time.Now()
		_, err := NewRasaClient(srv.URL, 100*time.Millisecond).Respond(context.Background(), "s1", "hi")
		assert.ErrorIs(t, err, ErrTransport)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewRasaClient(url, time.Second).Respond(context.Background(), "s1", "hi")
		assert.ErrorIs(t, err, ErrTransport)
	})
}
