// Package cache provides a small JSON value cache backed by Redis or process memory.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encodable values with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Shared keys.
const (
	KeyHeatmap        = "analytics:heatmap"
	KeyDashboard      = "analytics:dashboard"
	KeyPrioritization = "prioritization:snapshot"
)

// AnalyticsKeys are invalidated whenever events, attendees or votes change.
var AnalyticsKeys = []string{KeyHeatmap, KeyDashboard, KeyPrioritization}
