package usecase

import "time"

const (
	// DefaultPageLimit and MaxPageLimit bound list pagination.
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// FundConfigCacheTTL bounds staleness of the cached fund configuration.
	FundConfigCacheTTL = 5 * time.Minute
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}

	if limit > MaxPageLimit {
		return MaxPageLimit
	}

	return limit
}
