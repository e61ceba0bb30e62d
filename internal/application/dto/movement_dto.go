package dto

import (
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// source/dest según tipo: stock_in → dest; stock_out y adjustment → source
// (adjustment con quantity como delta con signo); transfer → ambos.
type ApplyMovementRequest struct {
	ProductID        string `json:"product_id"`
	Type             string `json:"type"`
	Quantity         int64  `json:"quantity"`
	SourceLocationID string `json:"source_location_id,omitempty"`
	DestLocationID   string `json:"dest_location_id,omitempty"`
	PartyKind        string `json:"party_kind,omitempty"`
	PartyID          string `json:"party_id,omitempty"`
	DisposalDetail   string `json:"disposal_detail,omitempty"`
	Reason           string `json:"reason"`
	Notes            string `json:"notes,omitempty"`
	Reference        string `json:"reference,omitempty"`
}

// PartyDTO contraparte normalizada de un movimiento.
type PartyDTO struct {
	Kind        string `json:"kind"`
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
}

// MovementResponse asiento confirmado del libro.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	Party            PartyDTO  `json:"party"`
	SourceLocationID string    `json:"source_location_id,omitempty"`
	DestLocationID   string    `json:"dest_location_id,omitempty"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes,omitempty"`
	PerformedBy      string    `json:"performed_by"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reference        string    `json:"reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.MovementRecord) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Party: PartyDTO{
			Kind:        m.Party.Kind,
			ID:          m.Party.ID,
			DisplayName: m.Party.DisplayName,
		},
		SourceLocationID: m.SourceLocationID,
		DestLocationID:   m.DestLocationID,
		Reason:           m.Reason,
		Notes:            m.Notes,
		PerformedBy:      m.PerformedBy,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reference:        m.Reference,
		CreatedAt:        m.CreatedAt,
	}
}
