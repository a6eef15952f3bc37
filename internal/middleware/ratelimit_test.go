package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		if !rl.Allow("login:203.0.113.5", 10, time.Minute) {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}
	if rl.Allow("login:203.0.113.5", 10, time.Minute) {
		t.Error("hit over the limit should be denied")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow("login:203.0.113.5", 3, time.Minute)
	}
	if rl.Allow("login:203.0.113.5", 3, time.Minute) {
		t.Error("exhausted key should be denied")
	}
	if !rl.Allow("login:198.51.100.7", 3, time.Minute) {
		t.Error("fresh key should be allowed")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow("k", 3, 10*time.Millisecond)
	}
	if rl.Allow("k", 3, 10*time.Millisecond) {
		t.Error("should be denied inside the window")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("k", 3, 10*time.Millisecond) {
		t.Error("should be allowed after the window resets")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("stale", 5, 10*time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	rl.Allow("live", 5, time.Minute)

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.buckets["stale"]; ok {
		t.Error("stale bucket should have been dropped")
	}
	if _, ok := rl.buckets["live"]; !ok {
		t.Error("live bucket should survive cleanup")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter()
	keyFunc := func(r *http.Request) string { return RealIP(r) }

	handler := RateLimit(rl, keyFunc, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "203.0.113.5:4242"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "203.0.113.5:4242"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr only", nil, "192.0.2.1:9000", "192.0.2.1"},
		{"cf header wins", map[string]string{"CF-Connecting-IP": "198.51.100.7", "X-Forwarded-For": "203.0.113.5"}, "192.0.2.1:9000", "198.51.100.7"},
		{"forwarded chain takes first", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "192.0.2.1:9000", "203.0.113.5"},
		{"unparseable remote addr", nil, "bogus", "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := RealIP(req); got != tt.want {
				t.Errorf("RealIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
