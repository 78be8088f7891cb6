package redis

import (
	"fmt"
	"log"
)

// InitRedis initializes the Redis connection and verifies it with a ping.
func InitRedis(addr string, db int) (*RedisClient, error) {
	rc := NewRedisClient(addr, db)

	if err := rc.client.Ping(rc.ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")
	return rc, nil
}

// CloseRedis gracefully closes the Redis connection.
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %v", err)
	}
	return nil
}
