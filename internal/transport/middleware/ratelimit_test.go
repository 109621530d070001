package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doFrom(h http.Handler, addr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/lookup?word=Accra", nil)
	req.RemoteAddr = addr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(10)(okHandler())
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doFrom(handler, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(5)(okHandler())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doFrom(handler, "1.2.3.4:1234").Code)
	}

	rec := doFrom(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_SameIPDifferentPortsShareBucket(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2)(okHandler())
	doFrom(handler, "5.5.5.5:1000")
	doFrom(handler, "5.5.5.5:2000")

	assert.Equal(t, http.StatusTooManyRequests, doFrom(handler, "5.5.5.5:3000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2)(okHandler())
	doFrom(handler, "1.1.1.1:1234")
	doFrom(handler, "1.1.1.1:1234")

	assert.Equal(t, http.StatusOK, doFrom(handler, "2.2.2.2:5678").Code)
}

func TestBucket_Refill(t *testing.T) {
	start := time.Now()
	b := &bucket{tokens: 1, maxTokens: 60, refillRate: 1, lastRefill: start}

	assert.True(t, b.allow(start))
	assert.False(t, b.allow(start))
	assert.True(t, b.allow(start.Add(1100*time.Millisecond)))
}

func TestRateLimiter_SweepDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	rl.getBucket("9.9.9.9", 10)
	rl.sweep(time.Now().Add(idleBucketTTL + time.Second))

	_, ok := rl.buckets.Load("9.9.9.9")
	assert.False(t, ok)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
