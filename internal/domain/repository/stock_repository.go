package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar la cantidad por
// producto+sucursal. Las escrituras ocurren siempre dentro de transacciones.
type StockRepository interface {
	Get(productID, locationID string) (*entity.LocationStock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, locationID string) (*entity.LocationStock, error)
	// Upsert inserta o actualiza la cantidad e incrementa Version.
	Upsert(stock *entity.LocationStock) error
	ListByProduct(productID string) ([]*entity.LocationStock, error)
	// SumByProduct devuelve la cantidad total del producto sobre todas las sucursales.
	SumByProduct(productID string) (int64, error)
}
