package availability

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"glowbook/models"

	"github.com/go-redis/redis/v8"
)

const (
	dayCachePrefix = "availability:"
	dayCacheTTL    = 5 * time.Minute
)

// DayCache keeps recently read day records close to the handlers so the
// calendar does not hit the database for every cell. Best-effort: a miss or
// a broken entry just falls through to the repository.
type DayCache interface {
	Get(date string) (*models.DayAvailability, bool)
	Set(date string, day models.DayAvailability)
	Delete(date string)
}

// RedisDayCache backs DayCache with the shared Redis cache.
type RedisDayCache struct {
	Client *redis.Client
}

func NewRedisDayCache(client *redis.Client) *RedisDayCache {
	return &RedisDayCache{Client: client}
}

func (c *RedisDayCache) Get(date string) (*models.DayAvailability, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := c.Client.Get(ctx, dayCachePrefix+date).Bytes()
	if err != nil {
		return nil, false
	}
	var day models.DayAvailability
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, false
	}
	return &day, true
}

func (c *RedisDayCache) Set(date string, day models.DayAvailability) {
	raw, err := json.Marshal(day)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.Client.Set(ctx, dayCachePrefix+date, raw, dayCacheTTL)
}

func (c *RedisDayCache) Delete(date string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.Client.Del(ctx, dayCachePrefix+date)
}

// MemoryDayCache is an in-process DayCache for tests.
type MemoryDayCache struct {
	mu   sync.Mutex
	days map[string]models.DayAvailability
}

func NewMemoryDayCache() *MemoryDayCache {
	return &MemoryDayCache{days: make(map[string]models.DayAvailability)}
}

func (c *MemoryDayCache) Get(date string) (*models.DayAvailability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	day, ok := c.days[date]
	if !ok {
		return nil, false
	}
	return &day, true
}

func (c *MemoryDayCache) Set(date string, day models.DayAvailability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.days[date] = day
}

func (c *MemoryDayCache) Delete(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.days, date)
}
