package request

import (
	"github.com/google/uuid"
)

type Store struct {
	Name      string  `validate:"required"                                          json:"name"`
	Type      string  `validate:"required,oneof=retail unmanned exhibition group_buy" json:"type"`
	Latitude  float64 `validate:"latitude"                                          json:"latitude"`
	Longitude float64 `validate:"longitude"                                         json:"longitude"`
}

type FindStoreById struct {
	ID uuid.UUID `validate:"required" json:"id"`
}
