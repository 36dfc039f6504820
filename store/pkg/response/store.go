package response

import (
	"time"

	"github.com/google/uuid"
)

// Store types mirror the mini-app storefront variants. The type only drives
// presentation (color/icon) except for unmanned stores, which track stock.
const (
	StoreTypeRetail     = "retail"
	StoreTypeUnmanned   = "unmanned"
	StoreTypeExhibition = "exhibition"
	StoreTypeGroupBuy   = "group_buy"
)

type Store struct {
	ID        uuid.UUID `json:"id"         redis:"id"`
	Name      string    `json:"name"       redis:"name"`
	Type      string    `json:"type"       redis:"type"`
	Latitude  float64   `json:"latitude"   redis:"latitude"`
	Longitude float64   `json:"longitude"  redis:"longitude"`
	CreatedAt time.Time `json:"created_at" redis:"created_at"`
	UpdatedAt time.Time `json:"updated_at" redis:"updated_at"`
}
