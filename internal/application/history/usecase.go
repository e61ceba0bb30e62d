package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// Filter acota la línea de tiempo. From/To son inclusivos; Actions admite
// tipos de movimiento y acciones de catálogo mezclados (vacío = todas).
// LocationID filtra movimientos que tocan esa sucursal (origen o destino);
// ActorLocationID restringe la visibilidad a eventos cuyo actor pertenece a
// esa sucursal (roles no admin).
type Filter struct {
	ProductID       string
	From            *time.Time
	To              *time.Time
	Actions         []string
	LocationID      string
	ActorLocationID string
	Limit           int
	Offset          int
}

// HistoryUseCase proyecta la línea de tiempo de auditoría: une el libro de
// movimientos con los eventos de ciclo de vida del catálogo. Solo lectura,
// nunca muta los datos subyacentes; cero resultados es una respuesta válida.
type HistoryUseCase struct {
	movRepo   repository.MovementRepository
	auditRepo repository.AuditRepository
}

// NewHistoryUseCase construye el proyector.
func NewHistoryUseCase(movRepo repository.MovementRepository, auditRepo repository.AuditRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo, auditRepo: auditRepo}
}

var movementActions = map[string]bool{
	entity.MovementTypeStockIn:    true,
	entity.MovementTypeStockOut:   true,
	entity.MovementTypeTransfer:   true,
	entity.MovementTypeAdjustment: true,
}

var catalogActions = map[string]bool{
	entity.AuditProductCreated: true,
	entity.AuditProductUpdated: true,
	entity.AuditProductDeleted: true,
}

// splitActions separa el filtro de acciones en tipos de movimiento y acciones
// de catálogo. Con filtro vacío ambas fuentes participan completas.
func splitActions(actions []string) (movTypes, catActions []string, wantMov, wantCat bool) {
	if len(actions) == 0 {
		return nil, nil, true, true
	}
	for _, a := range actions {
		if movementActions[a] {
			movTypes = append(movTypes, a)
		}
		if catalogActions[a] {
			catActions = append(catActions, a)
		}
	}
	return movTypes, catActions, len(movTypes) > 0, len(catActions) > 0
}

// QueryHistory devuelve la línea de tiempo filtrada, del evento más reciente
// al más antiguo, paginada con Limit/Offset.
func (uc *HistoryUseCase) QueryHistory(ctx context.Context, f Filter) ([]*entity.AuditEvent, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	movTypes, catActions, wantMov, wantCat := splitActions(f.Actions)

	// Cada fuente aporta hasta Offset+Limit eventos ya ordenados; la mezcla
	// re-ordena y recorta.
	fetch := f.Limit + f.Offset

	events := make([]*entity.AuditEvent, 0, fetch)
	if wantMov {
		records, err := uc.fetchMovements(f, movTypes, fetch)
		if err != nil {
			return nil, err
		}
		for _, m := range records {
			events = append(events, movementEvent(m))
		}
	}
	if wantCat {
		catalog, err := uc.auditRepo.List(repository.AuditFilter{
			ProductID:       f.ProductID,
			Actions:         catActions,
			ActorLocationID: f.ActorLocationID,
			From:            f.From,
			To:              f.To,
			Limit:           fetch,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, catalog...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})
	if f.Offset >= len(events) {
		return []*entity.AuditEvent{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(events) {
		end = len(events)
	}
	return events[f.Offset:end], nil
}

// QueryMovements devuelve asientos crudos del libro bajo el mismo filtro.
func (uc *HistoryUseCase) QueryMovements(ctx context.Context, f Filter) ([]*entity.MovementRecord, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	movTypes, _, _, _ := splitActions(f.Actions)
	mf := repository.MovementFilter{
		ProductID:  f.ProductID,
		LocationID: f.LocationID,
		Types:      movTypes,
		From:       f.From,
		To:         f.To,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}
	if f.ActorLocationID != "" {
		return uc.movRepo.ListByActorLocation(f.ActorLocationID, mf)
	}
	return uc.movRepo.List(mf)
}

func (uc *HistoryUseCase) fetchMovements(f Filter, types []string, limit int) ([]*entity.MovementRecord, error) {
	mf := repository.MovementFilter{
		ProductID:  f.ProductID,
		LocationID: f.LocationID,
		Types:      types,
		From:       f.From,
		To:         f.To,
		Limit:      limit,
	}
	if f.ActorLocationID != "" {
		return uc.movRepo.ListByActorLocation(f.ActorLocationID, mf)
	}
	return uc.movRepo.List(mf)
}

// movementEvent sintetiza la entrada de auditoría de un asiento del libro.
func movementEvent(m *entity.MovementRecord) *entity.AuditEvent {
	return &entity.AuditEvent{
		ID:          m.ID,
		Action:      m.Type,
		ProductID:   m.ProductID,
		ActorID:     m.PerformedBy,
		Description: describeMovement(m),
		Movement:    m,
		OccurredAt:  m.CreatedAt,
	}
}

// describeMovement arma la descripción legible del asiento.
func describeMovement(m *entity.MovementRecord) string {
	switch m.Type {
	case entity.MovementTypeStockIn:
		return fmt.Sprintf("entrada de %d unidades en %s (%s)", m.Quantity, m.DestLocationID, m.Party.DisplayName)
	case entity.MovementTypeStockOut:
		return fmt.Sprintf("salida de %d unidades de %s (%s)", m.Quantity, m.SourceLocationID, m.Party.DisplayName)
	case entity.MovementTypeTransfer:
		return fmt.Sprintf("traslado de %d unidades de %s a %s", m.Quantity, m.SourceLocationID, m.DestLocationID)
	case entity.MovementTypeAdjustment:
		return fmt.Sprintf("ajuste de %+d unidades en %s: %s", m.Quantity, m.SourceLocationID, m.Reason)
	}
	return m.Reason
}
