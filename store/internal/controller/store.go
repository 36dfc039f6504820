package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	commonHttp "github.com/rmdhfz/minimart/internal/http"
	"github.com/rmdhfz/minimart/internal/log"
	"github.com/rmdhfz/minimart/store/internal/otel"
	"github.com/rmdhfz/minimart/store/internal/service"
	"github.com/rmdhfz/minimart/store/pkg/request"
)

type StoreController struct {
	service *service.StoreService
}

func AttachStoreController(mux *mux.Router, service *service.StoreService) {
	controller := StoreController{service: service}

	router := mux.PathPrefix("/stores").Subrouter()
	router.HandleFunc("", controller.FindStores).Methods(http.MethodGet)
	router.HandleFunc("", controller.InsertStore).Methods(http.MethodPost)
	router.HandleFunc("/{storeId}", controller.FindStoreById).Methods(http.MethodGet)
}

func (t StoreController) FindStores(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StoreController FindStores")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreController FindStores").
		Str(log.KeyProcess, "finding stores").
		Logger()

	logger.Info().Msg("finding stores")
	c = logger.WithContext(c)
	stores, err := t.service.FindStores(c)
	if err != nil {
		err = fmt.Errorf("failed finding stores with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d stores", len(stores))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "stores found",
		"data": map[string]interface{}{
			"stores": stores,
		},
	})
}

func (t StoreController) FindStoreById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StoreController FindStoreById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreController FindStoreById").
		Str(log.KeyProcess, "validating storeId").
		Logger()

	logger.Info().Msg("validating storeId is valid uuid")
	pathValues := mux.Vars(r)
	storeId, err := uuid.Parse(pathValues["storeId"])
	if err != nil {
		err = fmt.Errorf("failed validating storeId=%s with error=%w", pathValues["storeId"], err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyStoreID, storeId.String()).Logger()
	logger.Info().Msgf("validated storeId=%s", storeId.String())

	logger = logger.With().
		Str(log.KeyProcess, fmt.Sprintf("finding storeId=%s", storeId.String())).
		Logger()
	logger.Info().Msgf("finding storeId=%s", storeId.String())
	c = logger.WithContext(c)
	store, err := t.service.FindStoreById(c, storeId)
	if err != nil {
		err = fmt.Errorf("failed finding storeId=%s with error=%w", storeId.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrStoreNotFound) {
			statusCode = http.StatusNotFound
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyStore, store).Logger()
	logger.Info().Msgf("found storeId=%s", storeId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("storeId=%s found", storeId.String()),
		"data": map[string]interface{}{
			"store": store,
		},
	})
}

func (t StoreController) InsertStore(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StoreController InsertStore")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreController InsertStore").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Store{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
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

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
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

	logger = logger.With().Str(log.KeyProcess, "inserting store").Logger()
	logger.Info().Msg("inserting store")
	c = logger.WithContext(c)
	store, err := t.service.InsertStore(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting store with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("inserted store")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully inserted store",
		"data": map[string]interface{}{
			"store": store,
		},
	})
}
