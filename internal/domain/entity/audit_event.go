package entity

import "time"

// Acciones que aparecen en la línea de tiempo de auditoría.
// Las tres primeras son eventos de ciclo de vida del catálogo; el resto son
// los tipos de movimiento (MovementType*).
const (
	AuditProductCreated = "product_created"
	AuditProductUpdated = "product_updated"
	AuditProductDeleted = "product_deleted"
)

// AuditEvent es una entrada de la línea de tiempo: unión de movimientos de
// inventario y eventos de ciclo de vida del catálogo. Solo lectura.
type AuditEvent struct {
	ID          string
	Action      string // product_created/updated/deleted o un MovementType
	ProductID   string
	ActorID     string
	Description string
	// Movement apunta al registro original cuando Action es un tipo de
	// movimiento; nil para eventos de catálogo.
	Movement   *MovementRecord
	OccurredAt time.Time
}
