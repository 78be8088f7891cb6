package config

import (
	"log"
	"os"

	"Polashi/services/redis"
)

// ConnectRedis connects the room directory to Redis using REDIS_URL.
func ConnectRedis() (*redis.RedisClient, error) {
	redisURI := os.Getenv("REDIS_URL")
	redisClient, err := redis.InitRedis(redisURI, 0)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
