package entity

import "time"

// Location representa una sucursal, bodega o punto de venta que mantiene su
// propia cantidad por producto.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
