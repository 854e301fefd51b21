// Package dedup remembers which shipment events were already stored so a
// refresh only writes what is new.
package dedup

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	defaultTTL     = 30 * 24 * time.Hour
)

type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens a Redis client and validates it with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// EventSet tracks stored events.
// Key format: shipment-event:<shipment_id>:<fingerprint>
type EventSet struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventSet(client *redis.Client, ttl time.Duration) *EventSet {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &EventSet{client: client, ttl: ttl}
}

// MarkNew records the event and reports whether it had not been seen before.
func (s *EventSet) MarkNew(ctx context.Context, shipmentID uint, fingerprint string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(shipmentID, fingerprint), "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup mark: %w", err)
	}
	return ok, nil
}

// Forget drops a mark, used when storing the event failed.
func (s *EventSet) Forget(ctx context.Context, shipmentID uint, fingerprint string) error {
	return s.client.Del(ctx, s.key(shipmentID, fingerprint)).Err()
}

func (s *EventSet) key(shipmentID uint, fingerprint string) string {
	return fmt.Sprintf("shipment-event:%d:%s", shipmentID, fingerprint)
}
