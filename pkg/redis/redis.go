package redis

import (
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/crave-catering/cc-order/config"
)

var (
	once   sync.Once
	client *redis.Client
)

func GetClient() *redis.Client {
	once.Do(func() {
		c := config.Get()

		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port),
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	})

	return client
}
