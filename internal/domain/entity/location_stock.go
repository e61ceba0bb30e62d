package entity

import "time"

// LocationStock representa la cantidad actual de un producto en una sucursal.
// Quantity nunca es negativa. Version crece monótonamente en cada escritura
// y sirve para detección de conflictos.
type LocationStock struct {
	ProductID  string
	LocationID string
	Quantity   int64
	Version    int64
	UpdatedAt  time.Time
}
