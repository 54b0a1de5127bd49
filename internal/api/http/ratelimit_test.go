package http

import (
	"testing"
	"time"
)

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(60, 2)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("1.1.1.1") || !limiter.Allow("1.1.1.1") {
		t.Fatal("burst requests should be allowed")
	}
	if limiter.Allow("1.1.1.1") {
		t.Fatal("third request should be limited")
	}
	if !limiter.Allow("2.2.2.2") {
		t.Fatal("other IPs have their own bucket")
	}

	now = now.Add(time.Second)
	if !limiter.Allow("1.1.1.1") {
		t.Fatal("token should refill after one second")
	}
}

func TestIPRateLimiter_EvictsIdleEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(60, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("1.1.1.1")
	now = now.Add(limiterIdleTTL + limiterSweepInterval + time.Minute)
	limiter.Allow("2.2.2.2")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.entries["1.1.1.1"]; ok {
		t.Error("idle entry was not evicted")
	}
}
