package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// cacheTTL keeps stale entries around well past the freshness window so
// they can serve as a fallback when the provider is down.
const cacheTTL = time.Hour

type TrackingCache interface {
	Get(ctx context.Context, orderID string) (Tracking, bool)
	Set(ctx context.Context, t Tracking)
}

type redisTrackingCache struct {
	logger *logrus.Logger
	client *goredis.Client
}

func NewRedisTrackingCache(logger *logrus.Logger, client *goredis.Client) TrackingCache {
	return &redisTrackingCache{
		logger: logger,
		client: client,
	}
}

func trackingKey(orderID string) string {
	return fmt.Sprintf("tracking:%s", orderID)
}

// Get implements TrackingCache. Cache failures behave like misses.
func (c *redisTrackingCache) Get(ctx context.Context, orderID string) (Tracking, bool) {
	buff, err := c.client.Get(ctx, trackingKey(orderID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.WithContext(ctx).WithError(err).Error()
		}
		return Tracking{}, false
	}

	var t Tracking
	if err := json.Unmarshal(buff, &t); err != nil {
		c.logger.WithContext(ctx).WithError(err).Error()
		return Tracking{}, false
	}

	return t, true
}

// Set implements TrackingCache. Write failures are logged and absorbed;
// tracking is best-effort data.
func (c *redisTrackingCache) Set(ctx context.Context, t Tracking) {
	buff, _ := json.Marshal(t)

	if err := c.client.Set(ctx, trackingKey(t.OrderID), buff, cacheTTL).Err(); err != nil {
		c.logger.WithContext(ctx).WithError(err).Error()
	}
}
