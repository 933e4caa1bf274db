// internal/sink/cache.go
package sink

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const ensuredKeyPrefix = "intake:tables"

// CachedSink remembers in Redis which tables were already ensured so the
// inner sink is only asked to prepare tables it has not seen within ttl.
// Cache failures never fail a submission.
type CachedSink struct {
	inner  TableSink
	redis  *redis.Client
	scope  string
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedSink wraps inner. scope separates keys of different stores,
// e.g. the spreadsheet ID.
func NewCachedSink(inner TableSink, client *redis.Client, scope string, ttl time.Duration, log logger.Logger) *CachedSink {
	return &CachedSink{
		inner:  inner,
		redis:  client,
		scope:  scope,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "ensured-table-cache"}),
	}
}

func (c *CachedSink) Name() string {
	return c.inner.Name()
}

func (c *CachedSink) key(table string) string {
	return fmt.Sprintf("%s:%s:%s:%s", ensuredKeyPrefix, c.inner.Name(), c.scope, table)
}

func (c *CachedSink) EnsureTablesExist(ctx context.Context, tables []Table) error {
	pending := make([]Table, 0, len(tables))
	for _, t := range tables {
		err := c.redis.Get(ctx, c.key(t.Name)).Err()
		switch {
		case err == nil:
			continue
		case stderrors.Is(err, redis.Nil):
		default:
			c.logger.Warn("ensured-table lookup failed", map[string]interface{}{
				"table": t.Name,
				"error": err,
			})
		}
		pending = append(pending, t)
	}

	if len(pending) == 0 {
		return nil
	}

	if err := c.inner.EnsureTablesExist(ctx, pending); err != nil {
		return err
	}

	for _, t := range pending {
		if err := c.redis.Set(ctx, c.key(t.Name), "1", c.ttl).Err(); err != nil {
			c.logger.Warn("ensured-table store failed", map[string]interface{}{
				"table": t.Name,
				"error": err,
			})
		}
	}
	return nil
}

// AppendRow forgets a table that the inner sink reports as missing.
func (c *CachedSink) AppendRow(ctx context.Context, table string, row []interface{}) error {
	err := c.inner.AppendRow(ctx, table, row)
	if err != nil && errors.HasCode(err, errors.ErrCodeSinkNotFound) {
		if delErr := c.redis.Del(ctx, c.key(table)).Err(); delErr != nil {
			c.logger.Warn("ensured-table invalidation failed", map[string]interface{}{
				"table": table,
				"error": delErr,
			})
		}
	}
	return err
}

// Probe delegates to the inner sink when it supports probing.
func (c *CachedSink) Probe(ctx context.Context) (*ProbeResult, error) {
	prober, ok := c.inner.(Prober)
	if !ok {
		return &ProbeResult{Tables: []string{}}, nil
	}
	return prober.Probe(ctx)
}
