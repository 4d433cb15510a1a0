package cache

import (
	"context"
	"testing"
	"time"

	"royalcert/internal/models"
	"royalcert/internal/repository"
	"royalcert/internal/repository/repotest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCached(t *testing.T, templates ...models.EquipmentTemplate) (*CachedTemplateRepository, *repotest.Templates, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	backing := repotest.NewTemplates(templates...)
	return NewCachedTemplateRepository(backing, rdb, time.Minute), backing, mr
}

func forklift() models.EquipmentTemplate {
	return models.EquipmentTemplate{
		ID:            "11111111-1111-1111-1111-111111111111",
		Name:          "FORKLIFT",
		EquipmentType: "FORKLIFT",
		TemplateType:  models.TemplateForm,
		IsActive:      true,
		Categories:    []models.TemplateCategory{{Code: "A", Items: []models.TemplateItem{{ID: 1, Text: "x"}}}},
	}
}

func TestGetByIDReadsThrough(t *testing.T) {
	ctx := context.Background()
	c, backing, mr := newCached(t, forklift())

	first, err := c.GetByID(ctx, forklift().ID)
	require.NoError(t, err)
	second, err := c.GetByID(ctx, forklift().ID)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.Reads)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Categories, second.Categories)
	assert.True(t, mr.Exists(idKey(forklift().ID)))
}

func TestMissesAreCached(t *testing.T) {
	ctx := context.Background()
	c, backing, _ := newCached(t)

	_, err := c.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = c.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, backing.Reads)

	_, err = c.FindActiveForm(ctx, "vinç")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWritesInvalidate(t *testing.T) {
	ctx := context.Background()
	c, backing, mr := newCached(t, forklift())

	_, err := c.List(ctx, repository.TemplateFilter{})
	require.NoError(t, err)
	_, err = c.FindActiveForm(ctx, "forklift")
	require.NoError(t, err)
	require.NotEmpty(t, mr.Keys())

	require.NoError(t, c.Create(ctx, &models.EquipmentTemplate{Name: "CARASKAL", EquipmentType: "CARASKAL", TemplateType: models.TemplateForm, IsActive: true}))
	assert.Empty(t, mr.Keys())

	list, err := c.List(ctx, repository.TemplateFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 3, backing.Reads)
}

func TestRedisDownFallsBackToRepository(t *testing.T) {
	ctx := context.Background()
	c, backing, mr := newCached(t, forklift())
	mr.Close()

	tpl, err := c.GetByID(ctx, forklift().ID)
	require.NoError(t, err)
	assert.Equal(t, "FORKLIFT", tpl.Name)

	require.NoError(t, c.Delete(ctx, forklift().ID))
	_, err = c.GetByID(ctx, forklift().ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 2, backing.Reads)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := ConnectRedis(context.Background(), Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	_ = rdb.Close()

	rdb, err = ConnectRedis(context.Background(), Config{RedisURL: mr.Addr()})
	require.NoError(t, err)
	_ = rdb.Close()
}
