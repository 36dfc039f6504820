package request

import (
	"github.com/google/uuid"
)

type AddProduct struct {
	ProductID uuid.UUID `validate:"required"         json:"product_id"`
	Quantity  *int32    `validate:"omitempty,gte=1"  json:"quantity,omitempty"`
}
