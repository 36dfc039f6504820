package repository

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmdhfz/minimart/product/pkg/response"
)

func (p Product) Response() response.Product {
	var displayStock *int32
	if p.DisplayStock.Valid {
		stock := p.DisplayStock.Int32
		displayStock = &stock
	}
	var storeId *uuid.UUID
	if p.StoreID.Valid {
		id := uuid.UUID(p.StoreID.Bytes)
		storeId = &id
	}
	return response.Product{
		ID:                   p.ID,
		Name:                 p.Name,
		MainPrice:            decimal.NewFromBigInt(p.MainPrice.Int, p.MainPrice.Exp),
		MinimumOrderQuantity: p.MinimumOrderQuantity,
		DisplayStock:         displayStock,
		StoreID:              storeId,
		MiniAppType:          p.MiniAppType,
		ImageUrl:             p.ImageUrl.String,
		CreatedAt:            p.CreatedAt.Time,
		UpdatedAt:            p.UpdatedAt.Time,
	}
}
