package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	inHttp "github.com/rmdhfz/minimart/internal/http"
	"github.com/rmdhfz/minimart/internal/log"
	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
)

type ProductClient struct {
	baseUrl string
}

func NewProductClient(baseUrl string) ProductClient {
	return ProductClient{baseUrl: baseUrl}
}

type productEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Product productResponse.Product `json:"product"`
	} `json:"data"`
}

func (t ProductClient) FindProductById(
	c context.Context,
	id uuid.UUID,
) (productResponse.Product, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductClient FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "finding product in product-service").
		Logger()

	logger.Info().Msgf("finding productId=%s in product-service", id.String())
	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		t.baseUrl+"/"+id.String(),
		nil,
	)
	if err != nil {
		err = fmt.Errorf("failed creating request to product-service with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	req.Header.Add(inHttp.HeaderRequestId, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", id.String(), err)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		err = fmt.Errorf("productId=%s with error=%w", id.String(), inErrors.ErrProductNotFound)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf(
			"product-service returned status code=%d for productId=%s",
			resp.StatusCode,
			id.String(),
		)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}

	envelope := productEnvelope{}
	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		err = fmt.Errorf("failed decoding product-service response with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	logger.Info().Msgf("found productId=%s in product-service", id.String())

	return envelope.Data.Product, nil
}
