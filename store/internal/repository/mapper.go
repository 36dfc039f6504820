package repository

import (
	"github.com/rmdhfz/minimart/store/pkg/response"
)

func (s Store) Response() response.Store {
	return response.Store{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt.Time,
		UpdatedAt: s.UpdatedAt.Time,
	}
}
