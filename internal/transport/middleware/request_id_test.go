package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/ninolex-gh/pkg/ctxutil"
)

func TestRequestID_ReuseIncoming(t *testing.T) {
	incomingID := uuid.New().String()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := ctxutil.RequestIDFromCtx(r.Context()); got != incomingID {
			t.Errorf("expected requestID %s, got %s", incomingID, got)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/lookup?word=Accra", nil)
	req.Header.Set(RequestIDHeader, incomingID)
	rec := httptest.NewRecorder()

	RequestID(slog.Default())(handler).ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != incomingID {
		t.Errorf("expected %s header %s, got %s", RequestIDHeader, incomingID, got)
	}
}

func TestRequestID_GenerateNew(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "absent", incoming: ""},
		{name: "contains newline", incoming: "abc\nlevel=ERROR"},
		{name: "too long", incoming: strings.Repeat("x", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = ctxutil.RequestIDFromCtx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()

			RequestID(slog.Default())(handler).ServeHTTP(rec, req)

			if _, err := uuid.Parse(gotID); err != nil {
				t.Errorf("expected valid UUID in context, got %q: %v", gotID, err)
			}
			if got := rec.Header().Get(RequestIDHeader); got != gotID {
				t.Errorf("expected header %q to match context %q", got, gotID)
			}
		})
	}
}

func TestRequestID_StoresScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxutil.LoggerFromCtx(r.Context()).Info("lookup miss")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	RequestID(base)(handler).ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), "request_id=req-123") {
		t.Errorf("expected scoped logger to carry request_id, got %q", buf.String())
	}
}
