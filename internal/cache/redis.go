package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/speakerdesk/config"
	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	speakersTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, speakersTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		speakersTTL: speakersTTL,
	}
}

func (c *RedisCache) GetSpeakers(ctx context.Context) ([]domain.Speaker, error) {
	data, err := c.client.Get(ctx, speakersKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var speakers []domain.Speaker
	if err := json.Unmarshal(data, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

func (c *RedisCache) SetSpeakers(ctx context.Context, speakers []domain.Speaker) error {
	payload, err := json.Marshal(speakers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, speakersKey(), payload, c.speakersTTL).Err()
}

func (c *RedisCache) InvalidateSpeakers(ctx context.Context) error {
	return c.client.Del(ctx, speakersKey()).Err()
}

// AcquireSlotHold is a short-lived fast-path guard on a (speaker, day, slot)
// tuple. The store's unique index remains the correctness mechanism; this
// only lets racing requests fail before hitting postgres.
func (c *RedisCache) AcquireSlotHold(ctx context.Context, speakerEmail string, day time.Time, slot int, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, slotHoldKey(speakerEmail, day, slot), "held", ttl).Result()
}

func (c *RedisCache) ReleaseSlotHold(ctx context.Context, speakerEmail string, day time.Time, slot int) error {
	return c.client.Del(ctx, slotHoldKey(speakerEmail, day, slot)).Err()
}

func speakersKey() string {
	return "cache:speakers"
}

func slotHoldKey(speakerEmail string, day time.Time, slot int) string {
	return fmt.Sprintf("hold:speaker:%s:%s:%d", speakerEmail, day.UTC().Format("2006-01-02"), slot)
}
