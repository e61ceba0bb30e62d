package repository

import (
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MovementFilter acota listados de movimientos. From/To son inclusivos.
type MovementFilter struct {
	ProductID  string
	LocationID string // coincide contra sucursal origen o destino
	Types      []string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. Solo inserta y lee: los registros son inmutables y nunca se
// borran (append-only).
type MovementRepository interface {
	Create(movement *entity.MovementRecord) error
	GetByID(id string) (*entity.MovementRecord, error)
	// GetByReference busca un movimiento por su token de idempotencia.
	GetByReference(reference string) (*entity.MovementRecord, error)
	// List devuelve movimientos ordenados del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.MovementRecord, error)
	// ListByActorLocation limita a movimientos cuyo actor pertenece a la sucursal.
	ListByActorLocation(locationID string, filter MovementFilter) ([]*entity.MovementRecord, error)
}
