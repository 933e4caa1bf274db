// internal/sink/provider.go
package sink

import (
	"context"
	"sync"
	"time"

	"application-intake/internal/common/config"
	"application-intake/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Provider resolves the sink a submission writes to. It fails with
// CONFIGURATION_MISSING when the sink cannot be built from configuration.
type Provider func(ctx context.Context) (TableSink, error)

// Static always returns s.
func Static(s TableSink) Provider {
	return func(context.Context) (TableSink, error) {
		return s, nil
	}
}

// SheetsProvider builds the Sheets sink on first use and reuses it. Until
// the credentials are complete every call reports the missing variables.
func SheetsProvider(cfg config.GoogleConfig, log logger.Logger) Provider {
	var (
		mu     sync.Mutex
		cached *SheetsSink
	)
	return func(ctx context.Context) (TableSink, error) {
		mu.Lock()
		defer mu.Unlock()

		if cached != nil {
			return cached, nil
		}
		s, err := NewSheetsSink(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		cached = s
		return cached, nil
	}
}

// WithEnsureCache decorates every sink from p with a CachedSink.
func WithEnsureCache(p Provider, client *redis.Client, scope string, ttl time.Duration, log logger.Logger) Provider {
	return func(ctx context.Context) (TableSink, error) {
		inner, err := p(ctx)
		if err != nil {
			return nil, err
		}
		return NewCachedSink(inner, client, scope, ttl, log), nil
	}
}
