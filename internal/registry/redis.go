package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aloc23/priority-transfers-admin-sub001/internal/config"
	"github.com/aloc23/priority-transfers-admin-sub001/internal/models"
)

const reminderKeyPrefix = "reminder:"

// RedisStore mirrors reminder metadata as JSON values under reminder:<id>.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(cfg config.Store) (*RedisStore, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, info models.ReminderInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, reminderKeyPrefix+info.BookingID, data, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, bookingID string) error {
	return s.client.Del(ctx, reminderKeyPrefix+bookingID).Err()
}

func (s *RedisStore) Load(ctx context.Context) ([]models.ReminderInfo, error) {
	var records []models.ReminderInfo

	iter := s.client.Scan(ctx, 0, reminderKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}

		var info models.ReminderInfo
		if err := json.Unmarshal([]byte(data), &info); err != nil {
			return nil, err
		}
		records = append(records, info)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
