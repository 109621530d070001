package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/ninolex-gh/pkg/ctxutil"
)

// RequestIDHeader is read from requests and echoed on responses.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 128

// RequestID tags each request with an ID, reusing a sane incoming one, and
// stores a logger carrying that ID in the context.
func RequestID(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = uuid.New().String()
			}

			ctx := ctxutil.WithRequestID(r.Context(), id)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.String("request_id", id)))

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validRequestID accepts short printable ASCII IDs only, so client input
// cannot forge log lines.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
