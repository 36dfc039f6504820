package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rmdhfz/minimart/cart/internal/geo"
	"github.com/rmdhfz/minimart/cart/internal/otel"
	"github.com/rmdhfz/minimart/cart/internal/service"
	"github.com/rmdhfz/minimart/cart/pkg/request"
	"github.com/rmdhfz/minimart/internal/common"
	inErrors "github.com/rmdhfz/minimart/internal/errors"
	commonHttp "github.com/rmdhfz/minimart/internal/http"
	"github.com/rmdhfz/minimart/internal/log"
	"github.com/rmdhfz/minimart/internal/middleware"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService, secretKey string) {
	controller := CartController{service: service}

	router := mux.PathPrefix("/carts").Subrouter()
	router.Use(middleware.Auth(secretKey))
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/items", controller.AddProduct).Methods(http.MethodPost)
	router.HandleFunc("/items/{productId}", controller.RemoveProduct).Methods(http.MethodDelete)
	router.HandleFunc("/items/{productId}/all", controller.RemoveAllOfProduct).Methods(http.MethodDelete)
}

// positionFromQuery reads the optional latitude and longitude query params.
// Both must be present and parseable for a position to be returned.
func positionFromQuery(r *http.Request) *geo.Position {
	latitude := r.URL.Query().Get("latitude")
	longitude := r.URL.Query().Get("longitude")
	if latitude == "" || longitude == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return nil
	}
	return &geo.Position{Latitude: lat, Longitude: lon}
}

func cartErrorStatusCode(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrStockInsufficient):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrItemNotFound), errors.Is(err, inErrors.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "finding cart").
		Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := t.service.FindCart(c, userId, positionFromQuery(r))
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) AddProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddProduct").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddProduct{}
	err = json.NewDecoder(r.Body).Decode(&reqBody)
	if err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	err = validate.StructCtx(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProductID, reqBody.ProductID.String()).
		Str(log.KeyProcess, "adding product to cart").
		Logger()
	logger.Info().Msg("adding product to cart")
	c = logger.WithContext(c)
	position := positionFromQuery(r)
	var cart interface{}
	if reqBody.Quantity != nil {
		cart, err = t.service.AddProductWithQuantity(c, userId, reqBody.ProductID, *reqBody.Quantity, position)
	} else {
		cart, err = t.service.AddProduct(c, userId, reqBody.ProductID, position)
	}
	if err != nil {
		err = fmt.Errorf("failed adding product to cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": cartErrorStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("added product to cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "product added to cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveProduct").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	pathValues := mux.Vars(r)
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Any(log.KeyPathValues, pathValues).
		Str(log.KeyProcess, "parsing productId").
		Logger()
	logger.Info().Msg("parsing productId")
	productId, err := uuid.Parse(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("parsed productId=%s", productId.String())

	logger = logger.With().
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing product from cart").
		Logger()
	logger.Info().Msg("removing product from cart")
	c = logger.WithContext(c)
	cart, err := t.service.RemoveProduct(c, userId, productId, positionFromQuery(r))
	if err != nil {
		err = fmt.Errorf("failed removing product from cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": cartErrorStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed product from cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "product removed from cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) RemoveAllOfProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveAllOfProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveAllOfProduct").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	pathValues := mux.Vars(r)
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Any(log.KeyPathValues, pathValues).
		Str(log.KeyProcess, "parsing productId").
		Logger()
	logger.Info().Msg("parsing productId")
	productId, err := uuid.Parse(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing productId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("parsed productId=%s", productId.String())

	logger = logger.With().
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing all of product from cart").
		Logger()
	logger.Info().Msg("removing all of product from cart")
	c = logger.WithContext(c)
	cart, err := t.service.RemoveAllOfProduct(c, userId, productId, positionFromQuery(r))
	if err != nil {
		err = fmt.Errorf("failed removing all of product from cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": cartErrorStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed all of product from cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "product removed from cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "clearing cart").
		Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	err = t.service.ClearCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("cleared cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart cleared",
	})
}
