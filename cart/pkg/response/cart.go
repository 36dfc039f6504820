package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

type CartItem struct {
	ProductID uuid.UUID               `json:"product_id"`
	Quantity  int32                   `json:"quantity"`
	Product   productResponse.Product `json:"product"`
	Subtotal  decimal.Decimal         `json:"subtotal"`
	AddedAt   time.Time               `json:"added_at"`
}

// StoreGroup is a projection over the cart items that share a resolved store.
// It is recomputed on every read and never persisted. DistanceKm is nil when
// either the shopper's position or the store is unknown.
type StoreGroup struct {
	StoreKey   string               `json:"store_key"`
	Store      *storeResponse.Store `json:"store"`
	DistanceKm *float64             `json:"distance_km"`
	Items      []CartItem           `json:"items"`
	Subtotal   decimal.Decimal      `json:"subtotal"`
}

type Cart struct {
	UserID uuid.UUID       `json:"user_id"`
	Groups []StoreGroup    `json:"groups"`
	Total  decimal.Decimal `json:"total"`
}
