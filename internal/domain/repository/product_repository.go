package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El motor de inventario usa GetByID, GetForUpdate y UpdateStatus; el resto
// es del ciclo de vida de catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando su fila hasta el fin de la
	// transacción activa. Es el punto de serialización por producto del
	// motor de movimientos. Devuelve (nil, nil) si no existe.
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStatus(productID, status string) error
	List(limit, offset int) ([]*entity.Product, error)
}
