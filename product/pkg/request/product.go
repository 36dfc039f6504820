package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	Name                 string          `validate:"required"                                            json:"name"`
	MainPrice            decimal.Decimal `validate:"required"                                            json:"main_price"`
	MinimumOrderQuantity int32           `validate:"required,gte=1"                                      json:"minimum_order_quantity"`
	DisplayStock         *int32          `validate:"omitempty,gte=0"                                     json:"display_stock"`
	StoreID              *uuid.UUID      `validate:"omitempty"                                           json:"store_id"`
	MiniAppType          string          `validate:"required,oneof=retail unmanned exhibition group_buy" json:"mini_app_type"`
	ImageUrl             string          `validate:"omitempty,url"                                       json:"image_url"`
}

type FindProductById struct {
	ID uuid.UUID `validate:"required" json:"id"`
}
