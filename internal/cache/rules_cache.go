package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mentorlink/mentorbot/internal/platform"
	"github.com/redis/go-redis/v9"
)

const rulesTTL = 5 * time.Minute

// RulesCache кэширует сырые правила доступности ментора в Redis.
// Листание календаря по страницам не должно дёргать платформу на каждую
// страницу: правила одного ментора читаются раз в rulesTTL.
// Кэш инвалидируется только по TTL.
type RulesCache struct {
	client *redis.Client

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRulesCache подключается к Redis и проверяет соединение
func NewRulesCache(redisAddr string) (*RulesCache, error) {
	const op = "cache.NewRulesCache"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RulesCache{client: client}, nil
}

// Get возвращает закэшированные записи правил ментора.
// (nil, false, nil) означает промах, а не ошибку.
func (c *RulesCache) Get(ctx context.Context, mentorID int64) ([]platform.RuleRecord, bool, error) {
	const op = "cache.RulesCache.Get"

	raw, err := c.client.Get(ctx, rulesKey(mentorID)).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var records []platform.RuleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// Битое значение равносильно промаху, перечитаем с платформы
		c.misses.Add(1)
		return nil, false, nil
	}

	c.hits.Add(1)
	return records, true, nil
}

// Put сохраняет записи правил ментора на rulesTTL
func (c *RulesCache) Put(ctx context.Context, mentorID int64, records []platform.RuleRecord) error {
	const op = "cache.RulesCache.Put"

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, rulesKey(mentorID), raw, rulesTTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stats счётчики попаданий и промахов (для status-эндпоинта)
func (c *RulesCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *RulesCache) Close() error {
	return c.client.Close()
}

func rulesKey(mentorID int64) string {
	return fmt.Sprintf("mentor_rules:%d", mentorID)
}
