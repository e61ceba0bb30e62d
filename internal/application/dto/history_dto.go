package dto

import (
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// HistoryEventResponse una entrada de la línea de tiempo de auditoría.
// Movement viene poblado cuando la acción es un movimiento de inventario.
type HistoryEventResponse struct {
	ID          string            `json:"id"`
	Action      string            `json:"action"`
	ProductID   string            `json:"product_id,omitempty"`
	ActorID     string            `json:"actor_id,omitempty"`
	Description string            `json:"description"`
	Movement    *MovementResponse `json:"movement,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// HistoryListResponse lista paginada de eventos.
type HistoryListResponse struct {
	Items []HistoryEventResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ToHistoryEventResponse convierte la entidad al DTO de salida.
func ToHistoryEventResponse(e *entity.AuditEvent) HistoryEventResponse {
	out := HistoryEventResponse{
		ID:          e.ID,
		Action:      e.Action,
		ProductID:   e.ProductID,
		ActorID:     e.ActorID,
		Description: e.Description,
		OccurredAt:  e.OccurredAt,
	}
	if e.Movement != nil {
		mov := ToMovementResponse(e.Movement)
		out.Movement = &mov
	}
	return out
}
