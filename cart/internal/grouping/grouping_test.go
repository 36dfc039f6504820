package grouping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rmdhfz/minimart/cart/internal/geo"
	"github.com/rmdhfz/minimart/cart/pkg/response"
	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

func newStore(name string, latitude, longitude float64) storeResponse.Store {
	return storeResponse.Store{
		ID:        uuid.New(),
		Name:      name,
		Type:      storeResponse.StoreTypeRetail,
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func newItem(storeId *uuid.UUID, price int64, quantity int32) response.CartItem {
	mainPrice := decimal.NewFromInt(price)
	return response.CartItem{
		ProductID: uuid.New(),
		Quantity:  quantity,
		Product: productResponse.Product{
			ID:                   uuid.New(),
			Name:                 "product",
			MainPrice:            mainPrice,
			MinimumOrderQuantity: 1,
			StoreID:              storeId,
			MiniAppType:          storeResponse.StoreTypeRetail,
		},
		Subtotal: mainPrice.Mul(decimal.NewFromInt32(quantity)),
	}
}

func indexOf(stores ...storeResponse.Store) map[uuid.UUID]storeResponse.Store {
	index := map[uuid.UUID]storeResponse.Store{}
	for _, store := range stores {
		index[store.ID] = store
	}
	return index
}

func TestGroupByStore(t *testing.T) {
	storeA := newStore("store a", -6.2, 106.816666)
	storeB := newStore("store b", -6.914744, 107.609810)
	index := indexOf(storeA, storeB)

	t.Run("given empty cart should return no groups", func(t *testing.T) {
		groups := GroupByStore([]response.CartItem{}, index)

		assert.Empty(t, groups)
	})

	t.Run("given items from two stores should partition by store", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&storeA.ID, 10, 1),
			newItem(&storeB.ID, 20, 2),
			newItem(&storeA.ID, 30, 3),
		}

		groups := GroupByStore(items, index)

		assert.Len(t, groups, 2)
		assert.Equal(t, storeA.ID.String(), groups[0].StoreKey)
		assert.Len(t, groups[0].Items, 2)
		assert.Equal(t, storeB.ID.String(), groups[1].StoreKey)
		assert.Len(t, groups[1].Items, 1)
	})

	t.Run("given any cart should keep every item in exactly one group", func(t *testing.T) {
		unresolved := uuid.New()
		items := []response.CartItem{
			newItem(&storeA.ID, 10, 1),
			newItem(nil, 15, 1),
			newItem(&storeB.ID, 20, 2),
			newItem(&unresolved, 25, 1),
			newItem(&storeA.ID, 30, 3),
		}

		groups := GroupByStore(items, index)

		grouped := 0
		seen := map[uuid.UUID]bool{}
		for _, group := range groups {
			for _, item := range group.Items {
				assert.False(t, seen[item.ProductID])
				seen[item.ProductID] = true
				grouped++
			}
		}
		assert.Equal(t, len(items), grouped)
	})

	t.Run("given items without resolvable store should fall into unknown bucket", func(t *testing.T) {
		unresolved := uuid.New()
		items := []response.CartItem{
			newItem(nil, 10, 1),
			newItem(&unresolved, 20, 1),
		}

		groups := GroupByStore(items, index)

		assert.Len(t, groups, 1)
		assert.Equal(t, UnknownStoreKey, groups[0].StoreKey)
		assert.Nil(t, groups[0].Store)
		assert.Len(t, groups[0].Items, 2)
	})

	t.Run("given grouped items should accumulate group subtotal", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&storeA.ID, 10, 2),
			newItem(&storeA.ID, 5, 3),
		}

		groups := GroupByStore(items, index)

		assert.Len(t, groups, 1)
		assert.True(t, decimal.NewFromInt(35).Equal(groups[0].Subtotal))
	})

	t.Run("given same items regrouped should return identical groups", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&storeB.ID, 10, 1),
			newItem(nil, 15, 1),
			newItem(&storeA.ID, 20, 2),
		}

		first := GroupByStore(items, index)
		second := GroupByStore(items, index)

		assert.Equal(t, first, second)
	})
}

func TestRankGroups(t *testing.T) {
	near := newStore("near", -6.21, 106.82)
	far := newStore("far", -7.250445, 112.768845)
	mid := newStore("mid", -6.914744, 107.609810)
	index := indexOf(near, far, mid)
	jakarta := &geo.Position{Latitude: -6.2, Longitude: 106.816666}

	t.Run("given position should order groups nearest first", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&far.ID, 10, 1),
			newItem(&near.ID, 10, 1),
			newItem(&mid.ID, 10, 1),
		}

		ranked := RankGroups(GroupByStore(items, index), jakarta)

		assert.Len(t, ranked, 3)
		assert.Equal(t, near.ID.String(), ranked[0].StoreKey)
		assert.Equal(t, mid.ID.String(), ranked[1].StoreKey)
		assert.Equal(t, far.ID.String(), ranked[2].StoreKey)
		assert.NotNil(t, ranked[0].DistanceKm)
		assert.Less(t, *ranked[0].DistanceKm, *ranked[1].DistanceKm)
		assert.Less(t, *ranked[1].DistanceKm, *ranked[2].DistanceKm)
	})

	t.Run("given unknown bucket should rank it after resolved groups", func(t *testing.T) {
		items := []response.CartItem{
			newItem(nil, 10, 1),
			newItem(&far.ID, 10, 1),
			newItem(&near.ID, 10, 1),
		}

		ranked := RankGroups(GroupByStore(items, index), jakarta)

		assert.Len(t, ranked, 3)
		assert.Equal(t, UnknownStoreKey, ranked[2].StoreKey)
		assert.Nil(t, ranked[2].DistanceKm)
	})

	t.Run("given no position should keep grouping order with nil distances", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&far.ID, 10, 1),
			newItem(&near.ID, 10, 1),
		}
		groups := GroupByStore(items, index)

		ranked := RankGroups(groups, nil)

		assert.Len(t, ranked, 2)
		assert.Equal(t, groups[0].StoreKey, ranked[0].StoreKey)
		assert.Equal(t, groups[1].StoreKey, ranked[1].StoreKey)
		assert.Nil(t, ranked[0].DistanceKm)
		assert.Nil(t, ranked[1].DistanceKm)
	})

	t.Run("given ranking twice should return same order", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&mid.ID, 10, 1),
			newItem(nil, 10, 1),
			newItem(&near.ID, 10, 1),
			newItem(&far.ID, 10, 1),
		}
		groups := GroupByStore(items, index)

		first := RankGroups(groups, jakarta)
		second := RankGroups(groups, jakarta)

		assert.Equal(t, first, second)
	})

	t.Run("given ranking should not mutate input groups", func(t *testing.T) {
		items := []response.CartItem{
			newItem(&far.ID, 10, 1),
			newItem(&near.ID, 10, 1),
		}
		groups := GroupByStore(items, index)
		firstKey := groups[0].StoreKey

		RankGroups(groups, jakarta)

		assert.Equal(t, firstKey, groups[0].StoreKey)
	})
}
