package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cajafund/cajafund/internal/infrastructure/logging"
)

func TestLoggingMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	var ctxRequestID string
	handler := chimiddleware.RequestID(mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxRequestID, _ = r.Context().Value(logging.RequestIDKey).(string)
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ctxRequestID == "" {
		t.Fatal("expected request ID to be propagated into the context")
	}

	out := buf.String()
	if !strings.Contains(out, `"status":418`) {
		t.Errorf("expected status in log output: %s", out)
	}
	if !strings.Contains(out, `"path":"/api/v1/members/"`) {
		t.Errorf("expected path in log output: %s", out)
	}
	if !strings.Contains(out, ctxRequestID) {
		t.Errorf("expected request ID %q in log output: %s", ctxRequestID, out)
	}
}

func TestLoggingMiddleware_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Context().Value(logging.RequestIDKey); id != nil {
			t.Fatalf("expected no request ID, got %v", id)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(context.Background()))
}
