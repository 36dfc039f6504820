package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	inHttp "github.com/rmdhfz/minimart/internal/http"
	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

func TestStoreClientFindStores(t *testing.T) {
	t.Run("given store list response should decode envelope", func(t *testing.T) {
		storeId := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
				"status":     "success",
				"statusCode": http.StatusOK,
				"message":    "stores found",
				"data": map[string]interface{}{
					"stores": []storeResponse.Store{
						{ID: storeId, Name: "store a", Type: storeResponse.StoreTypeRetail},
					},
				},
			})
		}))
		defer server.Close()

		stores, err := NewStoreClient(server.URL).FindStores(context.Background())

		assert.NoError(t, err)
		assert.Len(t, stores, 1)
		assert.Equal(t, storeId, stores[0].ID)
		assert.Equal(t, "store a", stores[0].Name)
	})

	t.Run("given server error should return error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewStoreClient(server.URL).FindStores(context.Background())

		assert.Error(t, err)
	})
}

func TestProductClientFindProductById(t *testing.T) {
	t.Run("given product response should decode envelope", func(t *testing.T) {
		productId := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/"+productId.String(), r.URL.Path)
			inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
				"status":     "success",
				"statusCode": http.StatusOK,
				"message":    "product found",
				"data": map[string]interface{}{
					"product": productResponse.Product{ID: productId, Name: "product a"},
				},
			})
		}))
		defer server.Close()

		product, err := NewProductClient(server.URL).FindProductById(context.Background(), productId)

		assert.NoError(t, err)
		assert.Equal(t, productId, product.ID)
		assert.Equal(t, "product a", product.Name)
	})

	t.Run("given not found should return product not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewProductClient(server.URL).FindProductById(context.Background(), uuid.New())

		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})
}
