package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock de un producto. Los tres primeros se derivan de la cantidad
// total y el umbral mínimo (ver inventory.DeriveStatus); Discontinued es un
// override manual que solo se cambia por edición de catálogo.
const (
	StatusInStock      = "in_stock"
	StatusLowStock     = "low_stock"
	StatusOutOfStock   = "out_of_stock"
	StatusDiscontinued = "discontinued"
)

// Product representa un producto o SKU del catálogo (multi-sucursal).
// El motor de inventario solo muta Status; la cantidad total nunca se
// almacena, se recalcula como la suma de LocationStock por sucursal.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Category     string
	Brand        string
	Supplier     string // proveedor como texto libre (sin tabla propia)
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	MinStock     int64 // umbral de stock bajo
	MaxStock     int64
	Status       string // in_stock, low_stock, out_of_stock, discontinued
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
