package inventory

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// DeriveStatus deriva el estado de stock a partir de la cantidad total y el
// umbral mínimo (servicio de dominio, función pura):
//
//	cantidad == 0            -> out_of_stock
//	0 < cantidad <= minStock -> low_stock
//	cantidad > minStock      -> in_stock
//
// Nunca deriva StatusDiscontinued: ese es un override manual de catálogo que
// el motor de movimientos debe preservar.
func DeriveStatus(quantity, minStock int64) string {
	switch {
	case quantity <= 0:
		return entity.StatusOutOfStock
	case quantity <= minStock:
		return entity.StatusLowStock
	default:
		return entity.StatusInStock
	}
}
