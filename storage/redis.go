package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hafeezhmha/goodminton/types"
)

var ctx = context.Background()

type Storage struct {
	client *redis.Client
}

func New(addr, password string, db int) *Storage {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // may be empty
		DB:       db,
	})
	return &Storage{client: rdb}
}

func (s *Storage) Ping() error {
	return s.client.Ping(ctx).Err()
}

// ===== User location =====

// SaveLocation stores the user's shared coordinates. No TTL and no
// atomicity guarantee beyond last-write-wins.
func (s *Storage) SaveLocation(chatID int64, loc types.Coordinate) error {
	key := fmt.Sprintf("loc:%d", chatID)
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

// GetLocation returns the stored coordinates, or nil if the user never
// shared a location
func (s *Storage) GetLocation(chatID int64) (*types.Coordinate, error) {
	key := fmt.Sprintf("loc:%d", chatID)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var loc types.Coordinate
	if err := json.Unmarshal([]byte(val), &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// ===== Last search results =====

// SaveLastResults keeps the rendered result message for /last (TTL: 24 hours)
func (s *Storage) SaveLastResults(chatID int64, message string) error {
	key := fmt.Sprintf("results:%d", chatID)
	return s.client.Set(ctx, key, message, 24*time.Hour).Err()
}

// GetLastResults returns the last rendered results, or "" if none are cached
func (s *Storage) GetLastResults(chatID int64) (string, error) {
	key := fmt.Sprintf("results:%d", chatID)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
