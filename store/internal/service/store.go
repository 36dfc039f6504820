package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	"github.com/rmdhfz/minimart/internal/log"
	"github.com/rmdhfz/minimart/store/internal/cache"
	"github.com/rmdhfz/minimart/store/internal/otel"
	"github.com/rmdhfz/minimart/store/internal/repository"
	"github.com/rmdhfz/minimart/store/pkg/request"
	"github.com/rmdhfz/minimart/store/pkg/response"
)

type StoreService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewStoreService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) StoreService {
	return StoreService{pool: pool, queries: queries, cache: cache}
}

func (svc StoreService) FindStores(c context.Context) (stores []response.Store, err error) {
	c, span := otel.Tracer.Start(c, "StoreService FindStores")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreService FindStores").
		Str(log.KeyCacheKey, cache.KeyStores).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding stores in cache").Logger()
	logger.Info().Msg("finding stores in cache")
	jsonString, err := svc.cache.Get(c, cache.KeyStores).Result()
	if err != nil {
		err = fmt.Errorf("failed finding stores in cache with error=%w", err)
		logger.Info().Err(err).Msg(err.Error())

		logger = logger.With().Str(log.KeyProcess, "finding stores in db").Logger()
		logger.Info().Msg("finding stores in db")
		rows, err := svc.queries.FindStores(c)
		if err != nil {
			err = fmt.Errorf("failed finding stores in db with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		stores = make([]response.Store, len(rows))
		for i, row := range rows {
			stores[i] = row.Response()
		}
		logger = logger.With().Any(log.KeyStores, stores).Logger()
		logger.Info().Msg("found stores in db")

		logger = logger.With().Str(log.KeyProcess, "inserting stores to cache").Logger()
		logger.Info().Msg("marshaling stores")
		storeJson, err := json.Marshal(stores)
		if err != nil {
			err = fmt.Errorf("failed marshaling stores with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("marshaled stores")

		logger.Info().Msg("inserting stores to cache")
		err = svc.cache.Set(c, cache.KeyStores, storeJson, time.Hour*1).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting stores to cache with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("inserted stores to cache")

		return stores, nil
	}
	logger.Info().Msg("found stores in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
	logger.Info().Msg("unmarshaling cache")
	err = json.Unmarshal([]byte(jsonString), &stores)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("unmarshaled cache")

	return stores, nil
}

func (svc StoreService) FindStoreById(
	c context.Context,
	id uuid.UUID,
) (response.Store, error) {
	c, span := otel.Tracer.Start(c, "StoreService FindStoreById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyStore, id.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreService FindStoreById").
		Str(log.KeyStoreID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding store in cache").Logger()
	logger.Info().Msg("finding store in cache")
	jsonString, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		logger.Info().Msg("found store in cache")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
		logger.Info().Msg("unmarshaling cache")
		cached := response.Store{}
		err = json.Unmarshal([]byte(jsonString), &cached)
		if err == nil {
			logger.Info().Msg("unmarshaled cache")
			return cached, nil
		}
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding store in db").Logger()
	logger.Info().Msgf("finding storeId=%s in db", id.String())
	store, err := svc.queries.FindStoreById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding storeId=%s with error=%w", id.String(), inErrors.ErrStoreNotFound)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Store{}, err
		}
		err = fmt.Errorf("failed finding storeId=%s in db with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Store{}, err
	}
	logger = logger.With().Any(log.KeyStore, store).Logger()
	logger.Info().Msgf("found storeId=%s in db", id.String())

	logger = logger.With().Str(log.KeyProcess, "inserting store to cache").Logger()
	logger.Info().Msg("marshaling store")
	storeJson, err := json.Marshal(store.Response())
	if err != nil {
		err = fmt.Errorf("failed marshaling store with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return store.Response(), nil
	}
	logger.Info().Msg("marshaled store")

	logger.Info().Msg("inserting store to cache")
	err = svc.cache.Set(c, cacheKey, storeJson, time.Hour*1).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting store to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return store.Response(), nil
	}
	logger.Info().Msg("inserted store to cache")

	return store.Response(), nil
}

func (svc StoreService) InsertStore(
	c context.Context,
	param request.Store,
) (response.Store, error) {
	c, span := otel.Tracer.Start(c, "StoreService InsertStore")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreService InsertStore").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting store to db").Logger()
	logger.Info().Msg("inserting store to db")
	store, err := svc.queries.InsertStore(c, repository.InsertStoreParams{
		ID:        uuid.New(),
		Name:      param.Name,
		Type:      param.Type,
		Latitude:  param.Latitude,
		Longitude: param.Longitude,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting store to db with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Store{}, err
	}
	logger = logger.With().Any(log.KeyStore, store).Logger()
	logger.Info().Msg("inserted store to db")

	logger = logger.With().Str(log.KeyProcess, "invalidating stores cache").Logger()
	logger.Info().Msg("invalidating stores cache")
	err = svc.cache.Del(c, cache.KeyStores).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating stores cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Store{}, err
	}
	logger.Info().Msg("invalidated stores cache")

	return store.Response(), nil
}
