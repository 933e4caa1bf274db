// internal/sink/cache_test.go
package sink

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCachedSink_SkipsEnsuredTables(t *testing.T) {
	mr, client := createTestRedis(t)
	inner := NewMemorySink("test")
	cached := NewCachedSink(inner, client, "sheet-1", time.Hour, logger.NewTestLogger(t))
	ctx := context.Background()

	tables := TablesFor([]string{"All_Applications", "AI_ML"})
	require.NoError(t, cached.EnsureTablesExist(ctx, tables))
	require.NoError(t, cached.EnsureTablesExist(ctx, tables))

	assert.Equal(t, 1, inner.EnsureCalls)
	assert.True(t, mr.Exists("intake:tables:memory:sheet-1:AI_ML"))
	assert.Equal(t, time.Hour, mr.TTL("intake:tables:memory:sheet-1:AI_ML"))

	// a new table only prepares that table
	require.NoError(t, cached.EnsureTablesExist(ctx, TablesFor([]string{"All_Applications", "Rejected"})))
	assert.Equal(t, 2, inner.EnsureCalls)
}

func TestCachedSink_ExpiredEntryPreparesAgain(t *testing.T) {
	mr, client := createTestRedis(t)
	inner := NewMemorySink("test")
	cached := NewCachedSink(inner, client, "sheet-1", time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	require.NoError(t, cached.EnsureTablesExist(ctx, TablesFor([]string{"All_Applications"})))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, cached.EnsureTablesExist(ctx, TablesFor([]string{"All_Applications"})))

	assert.Equal(t, 2, inner.EnsureCalls)
}

func TestCachedSink_InnerFailureIsNotCached(t *testing.T) {
	mr, client := createTestRedis(t)
	inner := NewMemorySink("test")
	inner.EnsureErr = errors.NewSinkPreparationFailedError(stderrors.New("boom"))
	cached := NewCachedSink(inner, client, "sheet-1", time.Hour, logger.NewTestLogger(t))

	err := cached.EnsureTablesExist(context.Background(), TablesFor([]string{"All_Applications"}))

	require.Error(t, err)
	assert.False(t, mr.Exists("intake:tables:memory:sheet-1:All_Applications"))
}

func TestCachedSink_RedisDownFallsThrough(t *testing.T) {
	mr, client := createTestRedis(t)
	inner := NewMemorySink("test")
	cached := NewCachedSink(inner, client, "sheet-1", time.Hour, logger.NewTestLogger(t))
	mr.Close()

	err := cached.EnsureTablesExist(context.Background(), TablesFor([]string{"All_Applications"}))

	require.NoError(t, err)
	assert.Equal(t, 1, inner.EnsureCalls)
}

func TestCachedSink_NotFoundInvalidates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	inner := NewMemorySink("test")
	inner.AppendErrors["AI_ML"] = errors.NewSinkNotFoundError("memory", stderrors.New("gone"))
	cached := NewCachedSink(inner, client, "sheet-1", time.Hour, logger.NewTestLogger(t))

	mock.ExpectDel("intake:tables:memory:sheet-1:AI_ML").SetVal(1)

	err := cached.AppendRow(context.Background(), "AI_ML", []interface{}{"x"})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSink_LookupWithRedismock(t *testing.T) {
	client, mock := redismock.NewClientMock()
	inner := NewMemorySink("test")
	cached := NewCachedSink(inner, client, "sheet-1", time.Hour, logger.NewTestLogger(t))

	mock.ExpectGet("intake:tables:memory:sheet-1:All_Applications").SetVal("1")
	mock.ExpectGet("intake:tables:memory:sheet-1:Rejected").RedisNil()
	mock.ExpectSet("intake:tables:memory:sheet-1:Rejected", "1", time.Hour).SetVal("OK")

	err := cached.EnsureTablesExist(context.Background(), TablesFor([]string{"All_Applications", "Rejected"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"Rejected"}, mustProbe(t, inner).Tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func mustProbe(t *testing.T, p Prober) *ProbeResult {
	t.Helper()
	result, err := p.Probe(context.Background())
	require.NoError(t, err)
	return result
}
