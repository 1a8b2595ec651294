package repository

import (
	"context"
	"sync/atomic"
	"time"

	"lendly/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverLimiter пробует основной лимитер и при ошибке уходит на запасной.
// Возврат к основному пробуется не чаще раза в минуту.
type FailoverLimiter struct {
	primary   domain.RequestLimiter
	fallback  domain.RequestLimiter
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverLimiter(primary, fallback domain.RequestLimiter, logger *zerolog.Logger) *FailoverLimiter {
	return &FailoverLimiter{primary: primary, fallback: fallback, logger: logger}
}

func (f *FailoverLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !f.isDown.Load() {
		allowed, err := f.primary.Allow(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		f.logger.Error().Err(err).Msg("primary limiter failed, falling back to memory")
		f.isDown.Store(true)
		f.lastCheck.Store(time.Now().UnixNano())
	}

	if f.isDown.Load() && time.Since(time.Unix(0, f.lastCheck.Load())) > time.Minute {
		allowed, err := f.primary.Allow(ctx, key, limit, window)
		if err == nil {
			f.isDown.Store(false)
			return allowed, nil
		}
		f.lastCheck.Store(time.Now().UnixNano())
	}

	return f.fallback.Allow(ctx, key, limit, window)
}
