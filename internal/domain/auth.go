package domain

import "time"

// Session is the persisted login snapshot for one client.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	LoginTime time.Time `json:"login_time"`
}

// ExpiresAt returns the absolute expiry for the given lifetime.
func (s *Session) ExpiresAt(ttl time.Duration) time.Time {
	return s.LoginTime.Add(ttl)
}

// ValidAt reports whether now falls strictly inside the session lifetime.
func (s *Session) ValidAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoginTime) < ttl
}
