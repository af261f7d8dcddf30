// Package ratelimit bounds expensive upstream calls per tenant using
// token buckets. One bucket per tenant keeps a noisy law firm from
// exhausting a shared budget: each tenant gets the full configured
// rate, independently.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/avocatech/juricite/internal/core/domain"
)

// TenantLimiter holds one token bucket per tenant. Buckets are created
// on first use and live for the process lifetime; tenant counts are
// small (law firms, not end users), so no expiry is needed.
type TenantLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewTenantLimiter creates a per-tenant limiter. Non-positive values
// fall back to the engine defaults.
func NewTenantLimiter(settings domain.RateLimitSettings) *TenantLimiter {
	defaults := domain.DefaultEngineSettings().RateLimit
	if settings.RerankPerSecond <= 0 {
		settings.RerankPerSecond = defaults.RerankPerSecond
	}
	if settings.RerankBurst <= 0 {
		settings.RerankBurst = defaults.RerankBurst
	}
	return &TenantLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(settings.RerankPerSecond),
		burst:    settings.RerankBurst,
	}
}

// Allow reports whether the tenant's budget permits one more call now.
// It never blocks; an exhausted budget means the caller skips the
// expensive step rather than queueing for it.
func (l *TenantLimiter) Allow(tenantID string) bool {
	return l.limiterFor(tenantID).Allow()
}

// limiterFor returns the tenant's bucket, creating it on first use.
func (l *TenantLimiter) limiterFor(tenantID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[tenantID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[tenantID] = limiter
	}
	return limiter
}
