package dto

import "time"

// CreateLocationRequest entrada para crear una sucursal.
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// LocationResponse salida de una sucursal.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de sucursales.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
