package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID                   uuid.UUID       `json:"id"                     redis:"id"`
	Name                 string          `json:"name"                   redis:"name"`
	MainPrice            decimal.Decimal `json:"main_price"             redis:"main_price"`
	MinimumOrderQuantity int32           `json:"minimum_order_quantity" redis:"minimum_order_quantity"`
	DisplayStock         *int32          `json:"display_stock"          redis:"display_stock"`
	StoreID              *uuid.UUID      `json:"store_id"               redis:"store_id"`
	MiniAppType          string          `json:"mini_app_type"          redis:"mini_app_type"`
	ImageUrl             string          `json:"image_url"              redis:"image_url"`
	CreatedAt            time.Time       `json:"created_at"             redis:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"             redis:"updated_at"`
}
