package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/pkg/config"
	"github.com/jhoicas/categories-api/pkg/logger"
)

const keyPrefix = "categories:list:"

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

var _ category.ListCache = (*ListCache)(nil)

// ListCache guarda en Redis los listados por padre como JSON.
// Los errores solo se registran: una caché caída equivale a un miss.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ListCache {
	return &ListCache{client: client, ttl: ttl, log: log.Component("cache")}
}

func (c *ListCache) GetList(ctx context.Context, parentID string) ([]dto.CategoryResponse, bool) {
	data, err := c.client.Get(ctx, listKey(parentID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("parent", parentID).Msg("redis GET falló")
		}
		return nil, false
	}
	var items []dto.CategoryResponse
	if err := json.Unmarshal(data, &items); err != nil {
		c.log.Warn().Err(err).Str("parent", parentID).Msg("listado en caché corrupto")
		_ = c.client.Del(ctx, listKey(parentID)).Err()
		return nil, false
	}
	return items, true
}

func (c *ListCache) SetList(ctx context.Context, parentID string, items []dto.CategoryResponse) {
	data, err := json.Marshal(items)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo serializar el listado")
		return
	}
	if err := c.client.Set(ctx, listKey(parentID), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("parent", parentID).Msg("redis SET falló")
	}
}

func (c *ListCache) Invalidate(ctx context.Context, parentIDs ...string) {
	if len(parentIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(parentIDs))
	seen := make(map[string]bool, len(parentIDs))
	for _, p := range parentIDs {
		k := listKey(p)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("redis DEL falló")
	}
}

// listKey: las raíces usan el sufijo "root".
func listKey(parentID string) string {
	if parentID == "" {
		return keyPrefix + "root"
	}
	return keyPrefix + parentID
}
