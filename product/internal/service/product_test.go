package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	"github.com/rmdhfz/minimart/product/internal/repository"
	"github.com/rmdhfz/minimart/product/pkg/request"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

func setupProductService(t *testing.T, c context.Context) (ProductService, *pgxpool.Pool) {
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
			filepath.Join("..", "..", "..", "migrations", "000002_create_table_products.up.sql"),
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

	return NewProductService(pool, repository.New(pool), cache), pool
}

func TestProductService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping product service integration test in short mode")
	}

	c := context.Background()
	svc, pool := setupProductService(t, c)

	inserted, err := svc.InsertProduct(c, request.Product{
		Name:                 "product a",
		MainPrice:            decimal.NewFromInt(150),
		MinimumOrderQuantity: 4,
		MiniAppType:          storeResponse.StoreTypeRetail,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, inserted.ID)
	assert.EqualValues(t, 4, inserted.MinimumOrderQuantity)
	assert.True(t, decimal.NewFromInt(150).Equal(inserted.MainPrice))

	t.Run("given inserted product should find it by id", func(t *testing.T) {
		found, err := svc.FindProductById(c, inserted.ID)

		assert.NoError(t, err)
		assert.Equal(t, inserted.ID, found.ID)
		assert.Equal(t, "product a", found.Name)
	})

	t.Run("given unknown id should return product not found", func(t *testing.T) {
		_, err := svc.FindProductById(c, uuid.New())

		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})

	t.Run("given row with null image url should still scan", func(t *testing.T) {
		seededId := uuid.New()
		_, err := pool.Exec(
			c,
			`INSERT INTO products (id, name, main_price, minimum_order_quantity, mini_app_type, image_url)
			 VALUES ($1, 'product b', 25, 1, 'unmanned', NULL)`,
			seededId,
		)
		require.NoError(t, err)

		found, err := svc.FindProductById(c, seededId)

		assert.NoError(t, err)
		assert.Equal(t, seededId, found.ID)
		assert.Equal(t, "", found.ImageUrl)
	})

	t.Run("given products should list them and fill the cache", func(t *testing.T) {
		fromDb, err := svc.FindProducts(c)
		assert.NoError(t, err)
		assert.Len(t, fromDb, 2)

		fromCache, err := svc.FindProducts(c)
		assert.NoError(t, err)
		require.Len(t, fromCache, len(fromDb))
		for i := range fromDb {
			assert.Equal(t, fromDb[i].ID, fromCache[i].ID)
			assert.Equal(t, fromDb[i].Name, fromCache[i].Name)
			assert.True(t, fromDb[i].MainPrice.Equal(fromCache[i].MainPrice))
		}
	})

	t.Run("given insert should invalidate the list cache", func(t *testing.T) {
		before, err := svc.FindProducts(c)
		assert.NoError(t, err)

		_, err = svc.InsertProduct(c, request.Product{
			Name:                 "product c",
			MainPrice:            decimal.NewFromInt(30),
			MinimumOrderQuantity: 1,
			MiniAppType:          storeResponse.StoreTypeRetail,
		})
		assert.NoError(t, err)

		after, err := svc.FindProducts(c)
		assert.NoError(t, err)
		assert.Len(t, after, len(before)+1)
	})
}
