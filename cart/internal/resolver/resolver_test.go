package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

type fakeStoreLister struct {
	stores []storeResponse.Store
	err    error
	calls  int
}

func (f *fakeStoreLister) FindStores(c context.Context) ([]storeResponse.Store, error) {
	f.calls++
	return f.stores, f.err
}

func TestResolverIndex(t *testing.T) {
	t.Run("given store list should index stores by id", func(t *testing.T) {
		stores := []storeResponse.Store{
			{ID: uuid.New(), Name: "store a", Type: storeResponse.StoreTypeRetail},
			{ID: uuid.New(), Name: "store b", Type: storeResponse.StoreTypeUnmanned},
		}
		resolver := NewResolver(&fakeStoreLister{stores: stores})

		index := resolver.Index(context.Background())

		assert.Len(t, index, 2)
		assert.Equal(t, stores[0], index[stores[0].ID])
		assert.Equal(t, stores[1], index[stores[1].ID])
	})

	t.Run("given repeated calls should fetch only once", func(t *testing.T) {
		lister := &fakeStoreLister{stores: []storeResponse.Store{{ID: uuid.New()}}}
		resolver := NewResolver(lister)

		resolver.Index(context.Background())
		resolver.Index(context.Background())
		resolver.Index(context.Background())

		assert.Equal(t, 1, lister.calls)
	})

	t.Run("given fetch failure should return empty index and retry later", func(t *testing.T) {
		store := storeResponse.Store{ID: uuid.New(), Name: "store a"}
		lister := &fakeStoreLister{err: errors.New("store-service unavailable")}
		resolver := NewResolver(lister)

		index := resolver.Index(context.Background())
		assert.Empty(t, index)

		lister.err = nil
		lister.stores = []storeResponse.Store{store}
		index = resolver.Index(context.Background())

		assert.Len(t, index, 1)
		assert.Equal(t, store, index[store.ID])
		assert.Equal(t, 2, lister.calls)
	})
}

func TestResolverResolve(t *testing.T) {
	t.Run("given known id should return store", func(t *testing.T) {
		store := storeResponse.Store{ID: uuid.New(), Name: "store a"}
		resolver := NewResolver(&fakeStoreLister{stores: []storeResponse.Store{store}})

		resolved := resolver.Resolve(context.Background(), store.ID)

		assert.NotNil(t, resolved)
		assert.Equal(t, store, *resolved)
	})

	t.Run("given unknown id should return nil", func(t *testing.T) {
		resolver := NewResolver(&fakeStoreLister{})

		resolved := resolver.Resolve(context.Background(), uuid.New())

		assert.Nil(t, resolved)
	})
}
