package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/crave-catering/cc-order/pkg/applogger"
)

func newTestCache(t *testing.T) (TrackingCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	return NewRedisTrackingCache(applogger.GetLogrus(), client), mr
}

func TestTrackingCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	stored := Tracking{
		OrderID:    "CO42",
		Status:     DeliveryStatusInTransit,
		DriverName: "Jordan Lee",
		Location:   &Geolocation{Latitude: 30.2672, Longitude: -97.7431},
		FetchedAt:  time.Now().Truncate(time.Second),
	}
	cache.Set(ctx, stored)

	loaded, ok := cache.Get(ctx, "CO42")
	assert.True(t, ok)
	assert.Equal(t, stored.Status, loaded.Status)
	assert.Equal(t, stored.DriverName, loaded.DriverName)
	assert.Equal(t, stored.Location.Latitude, loaded.Location.Latitude)
}

func TestTrackingCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, ok := cache.Get(context.Background(), "CO-missing")
	assert.False(t, ok)
}

func TestTrackingCacheExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, Tracking{OrderID: "CO42", Status: DeliveryStatusAssigned})
	mr.FastForward(2 * time.Hour)

	_, ok := cache.Get(ctx, "CO42")
	assert.False(t, ok)
}
