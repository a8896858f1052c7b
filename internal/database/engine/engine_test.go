package engine_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/vaishvijs13/kv-rs/internal/database/engine"
	"github.com/vaishvijs13/kv-rs/internal/database/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_SetGet(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.Set("k", "v", false, 0)

	got, ok, err := e.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestEngine_GetMissing(t *testing.T) {
	t.Parallel()

	e := engine.New()
	_, ok, err := e.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_SetTTL_ExpiresAndIsNotReturned(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.Set("k", "v", true, 1)

	// Force expiry by writing directly through ReplaySet with a past
	// expiration instant, avoiding a real sleep in the test.
	e.ReplaySet("k", "v", time.Now().Add(-time.Second).UnixMilli())

	_, ok, err := e.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), e.Exists("k"))
}

func TestEngine_SetTTL_ExplicitZero_ExpiresImmediately(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.Set("k", "v", true, 0)

	_, ok, err := e.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), e.Exists("k"))
	assert.Equal(t, int64(-2), e.TTL("k"))
}

func TestEngine_Del(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.Set("k", "v", false, 0)

	assert.Equal(t, int64(1), e.Del("k"))
	assert.Equal(t, int64(0), e.Del("k"))
}

func TestEngine_Exists(t *testing.T) {
	t.Parallel()

	e := engine.New()
	assert.Equal(t, int64(0), e.Exists("k"))
	e.Set("k", "v", false, 0)
	assert.Equal(t, int64(1), e.Exists("k"))
}

func TestEngine_TTL(t *testing.T) {
	t.Parallel()

	e := engine.New()
	assert.Equal(t, int64(-2), e.TTL("missing"))

	e.Set("noexp", "v", false, 0)
	assert.Equal(t, int64(-1), e.TTL("noexp"))

	e.Set("withexp", "v", true, 60)
	ttl := e.TTL("withexp")
	assert.True(t, ttl > 0 && ttl <= 60)
}

func TestEngine_Keys(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.Set("user:1", "a", false, 0)
	e.Set("user:2", "b", false, 0)
	e.Set("other", "c", false, 0)

	keys := e.Keys("user:")
	sort.Strings(keys)
	assert.Equal(t, []string{"user:1", "user:2"}, keys)

	all := e.Keys("")
	assert.Len(t, all, 3)
}

func TestEngine_Incr(t *testing.T) {
	t.Parallel()

	e := engine.New()

	n, err := e.Incr("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = e.Incr("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestEngine_Incr_NotInteger(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.Set("k", "notanumber", false, 0)

	_, err := e.Incr("k")
	require.Error(t, err)
	var nie *engine.NotIntegerError
	assert.ErrorAs(t, err, &nie)
}

func TestEngine_Incr_WrongType(t *testing.T) {
	t.Parallel()

	e := engine.New()
	_, err := e.LPush("k", []string{"a"})
	require.NoError(t, err)

	_, err = e.Incr("k")
	assert.ErrorIs(t, err, value.ErrWrongType)
}

func TestEngine_List(t *testing.T) {
	t.Parallel()

	e := engine.New()

	n, err := e.LPush("list", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	l, err := e.LLen("list")
	require.NoError(t, err)
	assert.Equal(t, int64(2), l)

	v, ok, err := e.LPop("list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	v, ok, err = e.LPop("list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok, err = e.LPop("list")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int64(0), e.Exists("list"))
}

func TestEngine_Set(t *testing.T) {
	t.Parallel()

	e := engine.New()

	added, err := e.SAdd("s", []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), added)

	card, err := e.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, int64(2), card)

	removed, err := e.SRem("s", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	card, err = e.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, int64(1), card)

	removed, err = e.SRem("s", []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, int64(0), e.Exists("s"))
}

func TestEngine_Sweep(t *testing.T) {
	t.Parallel()

	e := engine.New()
	e.ReplaySet("k", "v", time.Now().Add(-time.Second).UnixMilli())

	e.Sweep()
	assert.Equal(t, int64(0), e.Exists("k"))
}

func TestEngine_Start_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	e := engine.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Start(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not stop after context cancel")
	}
}

type recordingLogger struct {
	sets []string
	dels []string
}

func (r *recordingLogger) LogSet(key, value string, expiresAtMs int64) {
	r.sets = append(r.sets, key)
}

func (r *recordingLogger) LogDel(key string) {
	r.dels = append(r.dels, key)
}

func TestEngine_LogsMutations(t *testing.T) {
	t.Parallel()

	rl := &recordingLogger{}
	e := engine.New(engine.WithLogger(rl))

	e.Set("k", "v", false, 0)
	e.Del("k")

	assert.Equal(t, []string{"k"}, rl.sets)
	assert.Equal(t, []string{"k"}, rl.dels)
}

func TestEngine_WithPartitionNum_RoutesConsistently(t *testing.T) {
	t.Parallel()

	e := engine.New(engine.WithPartitionNum(4))
	e.Set("k", "v", false, 0)

	got, ok, err := e.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}
