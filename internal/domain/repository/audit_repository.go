package repository

import (
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// AuditFilter acota listados de eventos de catálogo. From/To son inclusivos.
type AuditFilter struct {
	ProductID string
	Actions   []string
	// ActorLocationID limita a eventos cuyo actor pertenece a esa sucursal.
	ActorLocationID string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// AuditRepository define el puerto para los eventos de ciclo de vida del
// catálogo (creación/edición/borrado de productos). Append-only.
type AuditRepository interface {
	Create(event *entity.AuditEvent) error
	// List devuelve eventos ordenados del más reciente al más antiguo.
	List(filter AuditFilter) ([]*entity.AuditEvent, error)
}
