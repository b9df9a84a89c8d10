package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Expired entries stay observable for this long so a late login attempt
// gets an explicit expired answer instead of a silent miss.
const otpRetentionGrace = time.Hour

// PendingOTP is a one-time code awaiting login.
type PendingOTP struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the code is past its validity window.
func (p *PendingOTP) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// OTPStore holds pending one-time codes keyed by normalized email.
// Put overwrites any previous code for the same email.
type OTPStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Peek(ctx context.Context, email string) (*PendingOTP, error)
	Evict(ctx context.Context, email string) error
}

// MemoryOTPStore is a process-local locked map. Codes do not survive a
// restart.
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]PendingOTP
}

// NewMemoryOTPStore creates an in-memory OTP store.
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{entries: make(map[string]PendingOTP)}
}

// Put stores a code with the given validity window.
func (s *MemoryOTPStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	key := normalizeOTPKey(email)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.entries[key] = PendingOTP{Code: code, ExpiresAt: now.Add(ttl)}
	return nil
}

// Peek returns the pending entry without consuming it, nil when absent.
func (s *MemoryOTPStore) Peek(_ context.Context, email string) (*PendingOTP, error) {
	key := normalizeOTPKey(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Evict removes the pending entry.
func (s *MemoryOTPStore) Evict(_ context.Context, email string) error {
	key := normalizeOTPKey(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// sweepLocked drops entries expired beyond the retention grace. Caller
// holds the mutex.
func (s *MemoryOTPStore) sweepLocked(now time.Time) {
	for key, entry := range s.entries {
		if now.Sub(entry.ExpiresAt) > otpRetentionGrace {
			delete(s.entries, key)
		}
	}
}

// RedisOTPStore keeps pending codes in redis so they are shared across
// instances. The redis TTL extends past the validity window by the
// retention grace; expiry is still judged against ExpiresAt.
type RedisOTPStore struct{}

// NewRedisOTPStore creates a redis-backed OTP store. Requires an
// initialized redis client.
func NewRedisOTPStore() *RedisOTPStore {
	return &RedisOTPStore{}
}

// Put stores a code with the given validity window.
func (s *RedisOTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	entry := PendingOTP{Code: code, ExpiresAt: time.Now().Add(ttl)}
	return SetJSON(ctx, otpKey(email), entry, ttl+otpRetentionGrace)
}

// Peek returns the pending entry without consuming it, nil when absent.
func (s *RedisOTPStore) Peek(ctx context.Context, email string) (*PendingOTP, error) {
	var entry PendingOTP
	hit, err := GetJSON(ctx, otpKey(email), &entry)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, nil
	}
	return &entry, nil
}

// Evict removes the pending entry.
func (s *RedisOTPStore) Evict(ctx context.Context, email string) error {
	return Del(ctx, otpKey(email))
}

// NewOTPStore picks the redis store when the cache is enabled, otherwise
// the in-memory store.
func NewOTPStore() OTPStore {
	if Enabled() {
		return NewRedisOTPStore()
	}
	return NewMemoryOTPStore()
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", normalizeOTPKey(email))
}

func normalizeOTPKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
