package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	"github.com/rmdhfz/minimart/internal/log"
	"github.com/rmdhfz/minimart/product/internal/cache"
	"github.com/rmdhfz/minimart/product/internal/otel"
	"github.com/rmdhfz/minimart/product/internal/repository"
	"github.com/rmdhfz/minimart/product/pkg/request"
	"github.com/rmdhfz/minimart/product/pkg/response"
)

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (svc ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Logger()

	displayStock := pgtype.Int4{}
	if param.DisplayStock != nil {
		displayStock = pgtype.Int4{Int32: *param.DisplayStock, Valid: true}
	}
	storeId := pgtype.UUID{}
	if param.StoreID != nil {
		storeId = pgtype.UUID{Bytes: *param.StoreID, Valid: true}
	}
	imageUrl := pgtype.Text{}
	if param.ImageUrl != "" {
		imageUrl = pgtype.Text{String: param.ImageUrl, Valid: true}
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Info().Msg("inserting product to database")
	span.AddEvent("inserting product to database")
	product, err := svc.queries.InsertProduct(
		c,
		repository.InsertProductParams{
			ID:   uuid.New(),
			Name: param.Name,
			MainPrice: pgtype.Numeric{
				Exp:              param.MainPrice.Exponent(),
				InfinityModifier: pgtype.Finite,
				Int:              param.MainPrice.Coefficient(),
				NaN:              false,
				Valid:            true,
			},
			MinimumOrderQuantity: param.MinimumOrderQuantity,
			DisplayStock:         displayStock,
			StoreID:              storeId,
			MiniAppType:          param.MiniAppType,
			ImageUrl:             imageUrl,
		},
	)
	if err != nil {
		err = fmt.Errorf("failed to insert product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("inserted product to database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("inserted product to database")

	productResponse := product.Response()

	cacheKey := cache.KeyProducts + product.ID.String()
	logger = logger.With().
		Str(log.KeyProcess, "inserting product to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("inserting product to cache")
	span.AddEvent("inserting product to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", productResponse).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse, nil
	}
	span.AddEvent("inserted product to cache")
	logger.Info().Msg("inserted product to cache")

	logger = logger.With().Str(log.KeyProcess, "invalidating products cache").Logger()
	logger.Info().Msg("invalidating products cache")
	err = svc.cache.Del(c, cache.KeyProductsAll).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating products cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse, nil
	}
	logger.Info().Msg("invalidated products cache")

	return productResponse, nil
}

func (svc ProductService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyCacheKey, cache.KeyProductsAll).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Info().Msg("finding products in cache")
	jsonCache, err := svc.cache.JSONGet(c, cache.KeyProductsAll, "$").Result()
	if err == nil && jsonCache != "" {
		logger.Info().Msg("found products in cache")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
		logger.Info().Msg("unmarshaling cache")
		cached := [][]response.Product{}
		err = json.Unmarshal([]byte(jsonCache), &cached)
		if err == nil && len(cached) == 1 {
			logger.Info().Msg("unmarshaled cache")
			return cached[0], nil
		}
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
	logger.Info().Msg("finding products in database")
	span.AddEvent("finding products in database")
	rows, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed to get products from database with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	products := make([]response.Product, len(rows))
	for i, row := range rows {
		products[i] = row.Response()
	}
	span.AddEvent("found products in database")
	logger.Info().Msgf("found %d products in database", len(products))

	logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
	logger.Info().Msg("inserting products to cache")
	err = svc.cache.JSONSet(c, cache.KeyProductsAll, "$", products).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting products to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return products, nil
	}
	logger.Info().Msg("inserted products to cache")

	return products, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (product response.Product, err error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := cache.KeyProducts + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey, "$").Result()
	if err == nil && jsonCache != "" {
		logger.Info().Msg("found product in cache")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
		logger.Info().Msg("unmarshaling cache")
		cached := []response.Product{}
		err = json.Unmarshal([]byte(jsonCache), &cached)
		if err == nil && len(cached) == 1 {
			logger.Info().Msg("unmarshaled cache")
			return cached[0], nil
		}
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Info().Msg("finding product in database")
	row, err := svc.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding productId=%s with error=%w", id.String(), inErrors.ErrProductNotFound)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		err = fmt.Errorf("failed finding productId=%s in database with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product = row.Response()
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("found product in database")

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	logger.Info().Msg("inserting product to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return product, nil
	}
	logger.Info().Msg("inserted product to cache")

	return product, nil
}
