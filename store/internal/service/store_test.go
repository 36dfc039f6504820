package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	"github.com/rmdhfz/minimart/store/internal/repository"
	"github.com/rmdhfz/minimart/store/pkg/request"
	"github.com/rmdhfz/minimart/store/pkg/response"
)

func setupStoreService(t *testing.T, c context.Context) StoreService {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
		}),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "migrations", "000001_create_table_stores.up.sql"),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed terminating postgres container with error: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c)
	require.NoError(t, err)

	pool, err := pgxpool.New(c, pgConnStr)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(c))
	t.Cleanup(pool.Close)

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := redisContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed terminating redis container with error: %s", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(c)
	require.NoError(t, err)
	redisOpt, err := redis.ParseURL(redisConnStr)
	require.NoError(t, err)
	cache := redis.NewClient(redisOpt)
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Logf("failed closing redis client with error: %s", err)
		}
	})

	return NewStoreService(pool, repository.New(pool), cache)
}

func TestStoreService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping store service integration test in short mode")
	}

	c := context.Background()
	svc := setupStoreService(t, c)

	inserted, err := svc.InsertStore(c, request.Store{
		Name:      "store a",
		Type:      response.StoreTypeUnmanned,
		Latitude:  -6.2,
		Longitude: 106.816666,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, inserted.ID)
	assert.Equal(t, response.StoreTypeUnmanned, inserted.Type)

	t.Run("given inserted store should find it by id", func(t *testing.T) {
		found, err := svc.FindStoreById(c, inserted.ID)

		assert.NoError(t, err)
		assert.Equal(t, inserted.ID, found.ID)
		assert.Equal(t, "store a", found.Name)
		assert.InDelta(t, -6.2, found.Latitude, 0.000001)
	})

	t.Run("given repeated lookup should serve it from cache", func(t *testing.T) {
		first, err := svc.FindStoreById(c, inserted.ID)
		assert.NoError(t, err)

		second, err := svc.FindStoreById(c, inserted.ID)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Name, second.Name)
		assert.Equal(t, first.Type, second.Type)
	})

	t.Run("given unknown id should return store not found", func(t *testing.T) {
		_, err := svc.FindStoreById(c, uuid.New())

		assert.ErrorIs(t, err, inErrors.ErrStoreNotFound)
	})

	t.Run("given stores should list them and fill the cache", func(t *testing.T) {
		fromDb, err := svc.FindStores(c)
		assert.NoError(t, err)
		assert.Len(t, fromDb, 1)

		fromCache, err := svc.FindStores(c)
		assert.NoError(t, err)
		require.Len(t, fromCache, len(fromDb))
		for i := range fromDb {
			assert.Equal(t, fromDb[i].ID, fromCache[i].ID)
			assert.Equal(t, fromDb[i].Name, fromCache[i].Name)
		}
	})
}
