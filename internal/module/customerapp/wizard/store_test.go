package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crave-catering/cc-order/pkg/applogger"
)

func newTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	return NewRedisStore(applogger.GetLogrus(), client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state := New()
	state.Draft.EventDetails = completeEventDetails()
	state.Next()

	require.NoError(t, store.Save(ctx, 42, state))

	loaded, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StepBreakfast, loaded.Current)
	assert.True(t, loaded.Completed[StepEventDetails])
	assert.Equal(t, state.Draft.EventDetails, loaded.Draft.EventDetails)
}

func TestRedisStoreLoadMissingStartsFresh(t *testing.T) {
	store, _ := newTestStore(t)

	state, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, StepEventDetails, state.Current)
	assert.Empty(t, state.Completed)
}

func TestRedisStoreClear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 9, New()))
	require.NoError(t, store.Clear(ctx, 9))

	assert.False(t, mr.Exists("wizard:9"))
}
