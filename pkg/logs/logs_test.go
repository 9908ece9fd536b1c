package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/config"
	"github.com/Alijeyrad/trialbook_backend/pkg/reqctx"
)

func TestContextHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(&contextHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	ctx := reqctx.WithRequestMeta(context.Background(), &reqctx.RequestMeta{RequestID: "req-42"})
	log.InfoContext(ctx, "booked")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-42", rec["request_id"])
	assert.NotContains(t, rec, "trace_id")
}

func TestContextHandler_NoRequest(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(&contextHandler{Handler: slog.NewJSONHandler(&buf, nil)}).With("service", "x")

	log.Info("startup")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.NotContains(t, rec, "request_id")
	assert.Equal(t, "x", rec["service"])
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debug, warn bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	log := slog.New(h)

	log.Debug("noisy")
	log.Warn("careful")

	assert.Contains(t, debug.String(), "noisy")
	assert.Contains(t, debug.String(), "careful")
	assert.NotContains(t, warn.String(), "noisy")
	assert.Contains(t, warn.String(), "careful")
}

func TestLokiWriter_Push(t *testing.T) {
	var got lokiPush
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/push", r.URL.Path)
		user, pass, _ = r.BasicAuth()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Observability.ServiceName = "trialbook"
	cfg.Logging.Output.Loki = config.LokiConfig{Enabled: true, Endpoint: srv.URL + "/", Username: "u", Password: "p"}

	lw := newLokiWriter(cfg)
	lw.now = func() time.Time { return time.Unix(0, 1700) }

	n, err := lw.Write([]byte(`{"msg":"hello"}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	require.Len(t, got.Streams, 1)
	assert.Equal(t, map[string]string{"service": "trialbook", "env": "test"}, got.Streams[0].Stream)
	assert.Equal(t, [][2]string{{"1700", `{"msg":"hello"}`}}, got.Streams[0].Values)
	assert.Equal(t, "u", user)
	assert.Equal(t, "p", pass)
}

func TestLokiWriter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Logging.Output.Loki.Endpoint = srv.URL
	_, err := newLokiWriter(cfg).Write([]byte("x"))
	assert.Error(t, err)
}
