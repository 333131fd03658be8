package port

import "context"

type CacheRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency frees a key whose request failed before taking effect
	ReleaseIdempotency(ctx context.Context, key string) error

	// GetRollCall returns the cached roll call for a vessel, found is false on a miss
	GetRollCall(ctx context.Context, vesselID string) (lines []string, found bool, err error)

	// SetRollCall caches the roll call of a vessel at the given version. It is a
	// no-op when the cache already knows a newer version.
	SetRollCall(ctx context.Context, vesselID string, version int, lines []string) error

	// InvalidateRollCall marks every cached roll call older than version stale
	InvalidateRollCall(ctx context.Context, vesselID string, version int) error
}
