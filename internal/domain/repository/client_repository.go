package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client (directorio).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	// GetByName busca por nombre normalizado (sin mayúsculas ni acentos).
	GetByName(name string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
}
