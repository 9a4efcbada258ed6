package cache

import "time"

// BytesCache stores serialized API responses keyed by endpoint+params.
// Implementations must treat a missing key as (nil, false, nil).
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
