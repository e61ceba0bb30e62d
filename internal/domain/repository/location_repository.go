package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	// GetByName busca por nombre normalizado (sin mayúsculas ni acentos).
	GetByName(name string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(limit, offset int) ([]*entity.Location, error)
}
