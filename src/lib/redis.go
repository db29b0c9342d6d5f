package lib

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects using a redis:// or rediss:// URL such as REDIS_HOST.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil, err
	}
	return redis.NewClient(opt), nil
}
