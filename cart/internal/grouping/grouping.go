package grouping

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmdhfz/minimart/cart/internal/geo"
	"github.com/rmdhfz/minimart/cart/pkg/response"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

// UnknownStoreKey collects items whose product has no store or whose store
// could not be resolved. Store-independent mini-app items land here too.
const UnknownStoreKey = "unknown"

// StoreKey resolves the grouping key for an item against the store index.
func StoreKey(item response.CartItem, stores map[uuid.UUID]storeResponse.Store) string {
	if item.Product.StoreID == nil {
		return UnknownStoreKey
	}
	if _, ok := stores[*item.Product.StoreID]; !ok {
		return UnknownStoreKey
	}
	return item.Product.StoreID.String()
}

// GroupByStore partitions cart items by their resolved store in a single
// pass. Groups appear in the order their first item was added, and items keep
// their insertion order within each group. The union of all group items is
// exactly the input list.
func GroupByStore(
	items []response.CartItem,
	stores map[uuid.UUID]storeResponse.Store,
) []response.StoreGroup {
	groups := []response.StoreGroup{}
	indexByKey := map[string]int{}
	for _, item := range items {
		key := StoreKey(item, stores)
		i, ok := indexByKey[key]
		if !ok {
			group := response.StoreGroup{
				StoreKey: key,
				Items:    []response.CartItem{},
				Subtotal: decimal.Zero,
			}
			if key != UnknownStoreKey {
				store := stores[*item.Product.StoreID]
				group.Store = &store
			}
			groups = append(groups, group)
			i = len(groups) - 1
			indexByKey[key] = i
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal = groups[i].Subtotal.Add(item.Subtotal)
	}
	return groups
}

// RankGroups sorts groups ascending by distance from the shopper's position
// to each group's store. Groups without a computable distance (unknown store
// or unknown position) sort after all resolved groups. The sort is stable so
// equal or incomparable groups keep their grouping order.
func RankGroups(groups []response.StoreGroup, position *geo.Position) []response.StoreGroup {
	ranked := make([]response.StoreGroup, len(groups))
	copy(ranked, groups)

	for i := range ranked {
		ranked[i].DistanceKm = nil
		if position == nil || ranked[i].Store == nil {
			continue
		}
		distance := geo.DistanceKm(
			position.Latitude,
			position.Longitude,
			ranked[i].Store.Latitude,
			ranked[i].Store.Longitude,
		)
		ranked[i].DistanceKm = &distance
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := ranked[i].DistanceKm, ranked[j].DistanceKm
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	return ranked
}
