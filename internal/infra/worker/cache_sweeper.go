package worker

import (
	"context"
	"time"

	"github.com/xavierca1/streamtv-site/pkg/logging"
)

type Sweepable interface {
	Sweep(now time.Time) int
}

// CacheSweeper limpa periodicamente as entradas expiradas do cache local.
type CacheSweeper struct {
	cache        Sweepable
	tickInterval time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

func NewCacheSweeper(cache Sweepable, tickInterval time.Duration, logger *logging.Logger) *CacheSweeper {
	if tickInterval <= 0 {
		tickInterval = time.Minute
	}
	return &CacheSweeper{cache: cache, tickInterval: tickInterval, logger: logger, now: time.Now}
}

// Start bloqueia até ctx ser cancelado.
func (s *CacheSweeper) Start(ctx context.Context) {
	s.logger.Info("cache sweeper started", "interval", s.tickInterval.String())

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("cache sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheSweeper) sweep() {
	if removed := s.cache.Sweep(s.now()); removed > 0 {
		s.logger.Debug("expired cache entries evicted", "count", removed)
	}
}
