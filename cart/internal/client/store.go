package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	inHttp "github.com/rmdhfz/minimart/internal/http"
	"github.com/rmdhfz/minimart/internal/log"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

type StoreClient struct {
	baseUrl string
}

func NewStoreClient(baseUrl string) StoreClient {
	return StoreClient{baseUrl: baseUrl}
}

type storesEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Stores []storeResponse.Store `json:"stores"`
	} `json:"data"`
}

func (t StoreClient) FindStores(c context.Context) ([]storeResponse.Store, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StoreClient FindStores").
		Str(log.KeyProcess, "finding stores in store-service").
		Logger()

	logger.Info().Msg("finding stores in store-service")
	req, err := http.NewRequestWithContext(c, http.MethodGet, t.baseUrl, nil)
	if err != nil {
		err = fmt.Errorf("failed creating request to store-service with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	req.Header.Add(inHttp.HeaderRequestId, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed finding stores in store-service with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf(
			"store-service returned status code=%d with error=%w",
			resp.StatusCode,
			inErrors.ErrStoreNotFound,
		)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	envelope := storesEnvelope{}
	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		err = fmt.Errorf("failed decoding store-service response with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d stores in store-service", len(envelope.Data.Stores))

	return envelope.Data.Stores, nil
}
