package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"royalcert/internal/logging"
	"royalcert/internal/models"
	"royalcert/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix   = "templates:"
	notFound    = "notfound"
	notFoundTTL = time.Minute
)

// CachedTemplateRepository is a read-through redis cache in front of a
// TemplateRepository. Every write drops all cached template keys. Redis
// failures are logged and served from the wrapped repository.
type CachedTemplateRepository struct {
	realRepo repository.TemplateRepository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedTemplateRepository(realRepo repository.TemplateRepository, rdb *redis.Client, ttl time.Duration) *CachedTemplateRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedTemplateRepository{realRepo: realRepo, redis: rdb, ttl: ttl}
}

func idKey(id string) string { return keyPrefix + "id:" + id }

func formKey(equipmentType string) string {
	return keyPrefix + "form:" + strings.ToLower(equipmentType)
}

func listKey(f repository.TemplateFilter) string {
	active := "any"
	if f.Active != nil {
		active = fmt.Sprintf("%t", *f.Active)
	}
	return fmt.Sprintf("%slist:%s:%s:%s", keyPrefix, strings.ToLower(f.EquipmentType), f.TemplateType, active)
}

// lookup reads key into dst. It reports whether the key was a hit and
// whether the hit was a cached miss.
func (c *CachedTemplateRepository) lookup(ctx context.Context, key string, dst any) (hit, missing bool) {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFound {
			return true, true
		}
		if err := json.Unmarshal(data, dst); err != nil {
			logging.Log.Warn("bad cached template payload, using db", zap.String("key", key), zap.Error(err))
			return false, false
		}
		return true, false
	case errors.Is(err, redis.Nil):
	default:
		logging.Log.Warn("redis error, using db", zap.String("key", key), zap.Error(err))
	}
	return false, false
}

func (c *CachedTemplateRepository) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Log.Warn("failed to marshal template for cache", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logging.Log.Warn("failed to cache templates", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedTemplateRepository) storeMiss(ctx context.Context, key string) {
	if err := c.redis.Set(ctx, key, notFound, notFoundTTL).Err(); err != nil {
		logging.Log.Warn("failed to cache notfound", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedTemplateRepository) invalidate(ctx context.Context) {
	iter := c.redis.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logging.Log.Warn("failed to scan template cache", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		logging.Log.Warn("failed to invalidate template cache", zap.Error(err))
	}
}

func (c *CachedTemplateRepository) GetByID(ctx context.Context, id string) (*models.EquipmentTemplate, error) {
	key := idKey(id)
	var t models.EquipmentTemplate
	if hit, missing := c.lookup(ctx, key, &t); hit {
		if missing {
			return nil, repository.ErrNotFound
		}
		return &t, nil
	}

	tpl, err := c.realRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.storeMiss(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, tpl)
	return tpl, nil
}

func (c *CachedTemplateRepository) List(ctx context.Context, f repository.TemplateFilter) ([]models.EquipmentTemplate, error) {
	key := listKey(f)
	var list []models.EquipmentTemplate
	if hit, missing := c.lookup(ctx, key, &list); hit && !missing {
		return list, nil
	}

	list, err := c.realRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, list)
	return list, nil
}

func (c *CachedTemplateRepository) FindActiveForm(ctx context.Context, equipmentType string) (*models.EquipmentTemplate, error) {
	key := formKey(equipmentType)
	var t models.EquipmentTemplate
	if hit, missing := c.lookup(ctx, key, &t); hit {
		if missing {
			return nil, repository.ErrNotFound
		}
		return &t, nil
	}

	tpl, err := c.realRepo.FindActiveForm(ctx, equipmentType)
	if errors.Is(err, repository.ErrNotFound) {
		c.storeMiss(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, tpl)
	return tpl, nil
}

func (c *CachedTemplateRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return c.realRepo.ExistsByName(ctx, name)
}

func (c *CachedTemplateRepository) Count(ctx context.Context) (int64, error) {
	return c.realRepo.Count(ctx)
}

func (c *CachedTemplateRepository) Create(ctx context.Context, t *models.EquipmentTemplate) error {
	defer c.invalidate(ctx)
	return c.realRepo.Create(ctx, t)
}

func (c *CachedTemplateRepository) Update(ctx context.Context, t *models.EquipmentTemplate) error {
	defer c.invalidate(ctx)
	return c.realRepo.Update(ctx, t)
}

func (c *CachedTemplateRepository) Delete(ctx context.Context, id string) error {
	defer c.invalidate(ctx)
	return c.realRepo.Delete(ctx, id)
}

var _ repository.TemplateRepository = (*CachedTemplateRepository)(nil)
