package usecase

import (
	"context"
	"time"
)

// TokenStore keeps short-lived secrets such as email OTPs and password
// reset tokens.
type TokenStore interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr adds one to the counter at key, resets its expiry to ttl and
	// returns the new value.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type ScanCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// EventPublisher pushes realtime events to connected clients.
type EventPublisher interface {
	Publish(event string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
