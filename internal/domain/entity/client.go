package entity

import "time"

// Client representa un cliente del directorio (contraparte de salidas y devoluciones).
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
