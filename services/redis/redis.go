package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	redis_models "Polashi/models/redis"
	redis_utils "Polashi/services/redis/utils"
)

// Directory summaries outlive any realistic party session but not a
// forgotten weekend: stale entries expire on their own.
const summaryTTL = 24 * time.Hour

// RedisClient handles Redis operations for the room directory.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance. Accepts either a
// plain host:port or a full redis:// URL for hosted instances.
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if opt, err := redis.ParseURL(addr); err == nil {
		log.Println("Connecting to Redis via URL...")
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveRoomSummary stores one room's directory digest.
// Key format: "room_summary:{code}", TTL 24 hours.
func (rc *RedisClient) SaveRoomSummary(summary *redis_models.RoomSummary) error {
	key := redis_utils.FormatRoomSummaryKey(summary.RoomCode)
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error marshaling room summary: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, summaryTTL).Err()
}

// GetRoomSummary retrieves one room's directory digest.
func (rc *RedisClient) GetRoomSummary(roomCode string) (*redis_models.RoomSummary, error) {
	key := redis_utils.FormatRoomSummaryKey(roomCode)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting room summary: %v", err)
	}

	var summary redis_models.RoomSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("error unmarshaling room summary: %v", err)
	}
	return &summary, nil
}

// DeleteRoomSummary removes a dissolved room from the directory.
func (rc *RedisClient) DeleteRoomSummary(roomCode string) error {
	key := redis_utils.FormatRoomSummaryKey(roomCode)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting room summary: %v", err)
	}
	return nil
}
