package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rmdhfz/minimart/cart/internal/cache"
	"github.com/rmdhfz/minimart/cart/internal/geo"
	"github.com/rmdhfz/minimart/cart/internal/grouping"
	"github.com/rmdhfz/minimart/cart/internal/otel"
	"github.com/rmdhfz/minimart/cart/internal/resolver"
	"github.com/rmdhfz/minimart/cart/internal/session"
	"github.com/rmdhfz/minimart/cart/pkg/response"
	inErrors "github.com/rmdhfz/minimart/internal/errors"
	"github.com/rmdhfz/minimart/internal/log"
	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
)

type ProductFinder interface {
	FindProductById(c context.Context, id uuid.UUID) (productResponse.Product, error)
}

type CartService struct {
	sessions *session.Registry
	resolver *resolver.Resolver
	products ProductFinder
	cache    *redis.Client
}

func NewCartService(
	sessions *session.Registry,
	resolver *resolver.Resolver,
	products ProductFinder,
	cache *redis.Client,
) CartService {
	return CartService{
		sessions: sessions,
		resolver: resolver,
		products: products,
		cache:    cache,
	}
}

// ensureSession returns the shopper's session, rehydrating a fresh one from
// the Redis snapshot when this process has not seen the shopper yet. Cache
// failures degrade to an empty in-memory session.
func (svc CartService) ensureSession(c context.Context, userId uuid.UUID) *session.Session {
	sess, existed := svc.sessions.Get(userId)
	if existed || svc.cache == nil {
		return sess
	}

	cacheKey := fmt.Sprintf(cache.KeyCartSessions, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ensureSession").
		Str(log.KeyCacheKey, cacheKey).
		Str(log.KeyProcess, "restoring session from cache").
		Logger()

	logger.Info().Msg("restoring session from cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey).Result()
	if err != nil || jsonCache == "" {
		logger.Info().Err(err).Msg("no session snapshot in cache")
		return sess
	}

	items := []session.Item{}
	err = json.Unmarshal([]byte(jsonCache), &items)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling session snapshot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return sess
	}
	sess.Restore(items)
	logger.Info().Msgf("restored %d items from cache", len(items))

	return sess
}

// snapshotSession persists the session to Redis best-effort. The in-memory
// session stays authoritative; a failed snapshot is only logged.
func (svc CartService) snapshotSession(c context.Context, sess *session.Session) {
	if svc.cache == nil {
		return
	}

	cacheKey := fmt.Sprintf(cache.KeyCartSessions, sess.UserId().String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService snapshotSession").
		Str(log.KeyCacheKey, cacheKey).
		Str(log.KeyProcess, "snapshotting session to cache").
		Logger()

	err := svc.cache.JSONSet(c, cacheKey, "$", sess.Items()).Err()
	if err != nil {
		err = fmt.Errorf("failed snapshotting session to cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("snapshotted session to cache")
}

func cartItemResponse(item session.Item) response.CartItem {
	return response.CartItem{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Product:   item.Product,
		Subtotal:  item.Product.MainPrice.Mul(decimal.NewFromInt32(item.Quantity)),
		AddedAt:   item.AddedAt,
	}
}

// buildCart projects the session into ranked store groups. Grouping and
// ranking are pure functions of the items, the store index and the shopper's
// position; the projection is recomputed on every call.
func (svc CartService) buildCart(
	c context.Context,
	sess *session.Session,
	position *geo.Position,
) response.Cart {
	items := sess.Items()
	cartItems := make([]response.CartItem, len(items))
	for i, item := range items {
		cartItems[i] = cartItemResponse(item)
	}

	index := svc.resolver.Index(c)
	groups := grouping.RankGroups(grouping.GroupByStore(cartItems, index), position)

	total := decimal.Zero
	for _, group := range groups {
		total = total.Add(group.Subtotal)
	}

	return response.Cart{UserID: sess.UserId(), Groups: groups, Total: total}
}

func (svc CartService) FindCart(
	c context.Context,
	userId uuid.UUID,
	position *geo.Position,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "building cart").
		Logger()

	logger.Info().Msg("building cart")
	c = logger.WithContext(c)
	sess := svc.ensureSession(c, userId)
	cart := svc.buildCart(c, sess, position)
	logger.Info().Msgf("built cart with %d groups", len(cart.Groups))

	return cart, nil
}

// fetchProduct loads the product snapshot for a mutation. On a network
// failure it falls back to the denormalized snapshot already in the cart so
// an existing item can still be mutated offline.
func (svc CartService) fetchProduct(
	c context.Context,
	sess *session.Session,
	productId uuid.UUID,
) (productResponse.Product, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService fetchProduct").
		Str(log.KeyProductID, productId.String()).
		Logger()

	product, err := svc.products.FindProductById(c, productId)
	if err != nil {
		for _, item := range sess.Items() {
			if item.ProductID == productId {
				logger.Info().
					Err(err).
					Msg("product fetch failed, falling back to cart snapshot")
				return item.Product, nil
			}
		}
		return productResponse.Product{}, err
	}
	return product, nil
}

func (svc CartService) AddProduct(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	position *geo.Position,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddProduct",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, productId.String()),
		))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddProduct").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	sess := svc.ensureSession(c, userId)
	product, err := svc.fetchProduct(c, sess, productId)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "adding product to cart").Logger()
	logger.Info().Msg("adding product to cart")
	quantity, err := sess.AddProduct(product)
	if err != nil {
		err = fmt.Errorf("failed adding productId=%s with error=%w", productId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int32(log.KeyQuantity, quantity).Logger()
	logger.Info().Msgf("added product to cart with quantity=%d", quantity)

	svc.snapshotSession(c, sess)

	return svc.buildCart(c, sess, position), nil
}

func (svc CartService) AddProductWithQuantity(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	quantity int32,
	position *geo.Position,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddProductWithQuantity",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, productId.String()),
			attribute.Int(log.KeyQuantity, int(quantity)),
		))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddProductWithQuantity").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	sess := svc.ensureSession(c, userId)
	product, err := svc.fetchProduct(c, sess, productId)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "adding product to cart").Logger()
	logger.Info().Msg("adding product to cart")
	newQuantity, err := sess.AddProductWithQuantity(product, quantity)
	if err != nil {
		err = fmt.Errorf("failed adding productId=%s with error=%w", productId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("added product to cart with quantity=%d", newQuantity)

	svc.snapshotSession(c, sess)

	return svc.buildCart(c, sess, position), nil
}

func (svc CartService) RemoveProduct(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	position *geo.Position,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveProduct",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, productId.String()),
		))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveProduct").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing product from cart").
		Logger()

	logger.Info().Msg("removing product from cart")
	c = logger.WithContext(c)
	sess := svc.ensureSession(c, userId)
	quantity, removed, err := sess.RemoveProduct(productId)
	if err != nil {
		err = fmt.Errorf("failed removing productId=%s with error=%w", productId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if removed {
		logger.Info().Msg("removed product from cart entirely")
	} else {
		logger.Info().Msgf("decremented product to quantity=%d", quantity)
	}

	svc.snapshotSession(c, sess)

	return svc.buildCart(c, sess, position), nil
}

func (svc CartService) RemoveAllOfProduct(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	position *geo.Position,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveAllOfProduct",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, productId.String()),
		))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveAllOfProduct").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing all of product from cart").
		Logger()

	logger.Info().Msg("removing all of product from cart")
	c = logger.WithContext(c)
	sess := svc.ensureSession(c, userId)
	err := sess.RemoveAllOfProduct(productId)
	if err != nil {
		err = fmt.Errorf("failed removing productId=%s with error=%w", productId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed all of product from cart")

	svc.snapshotSession(c, sess)

	return svc.buildCart(c, sess, position), nil
}

func (svc CartService) ClearCart(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	sess, _ := svc.sessions.Get(userId)
	sess.Clear()
	logger.Info().Msg("cleared cart")

	if svc.cache == nil {
		return nil
	}
	cacheKey := fmt.Sprintf(cache.KeyCartSessions, userId.String())
	logger = logger.With().
		Str(log.KeyProcess, "deleting session from cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("deleting session from cache")
	err := svc.cache.JSONDel(c, cacheKey, "$").Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		err = fmt.Errorf("failed deleting session from cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil
	}
	logger.Info().Msg("deleted session from cache")

	return nil
}
