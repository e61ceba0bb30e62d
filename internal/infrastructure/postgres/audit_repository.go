package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación append-only de los eventos de ciclo de vida del
// catálogo. Los movimientos NO viven aquí: la línea de tiempo los mezcla en
// memoria desde la tabla movements.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste un evento de catálogo.
func (r *AuditRepo) Create(event *entity.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_events (id, action, product_id, actor_id, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.Action, event.ProductID, nullIfEmpty(event.ActorID),
		event.Description, event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create audit event: %w", err)
	}
	return nil
}

// List lista eventos del más reciente al más antiguo según el filtro.
func (r *AuditRepo) List(filter repository.AuditFilter) ([]*entity.AuditEvent, error) {
	query := `
		SELECT a.id, a.action, a.product_id, a.actor_id, a.description, a.occurred_at
		FROM audit_events a`
	var args []any
	pos := 1
	if filter.ActorLocationID != "" {
		query += fmt.Sprintf(" JOIN users u ON u.id = a.actor_id WHERE u.location_id = $%d", pos)
		args = append(args, filter.ActorLocationID)
		pos++
	} else {
		query += " WHERE 1=1"
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND a.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if len(filter.Actions) > 0 {
		query += fmt.Sprintf(" AND a.action = ANY($%d)", pos)
		args = append(args, filter.Actions)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND a.occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND a.occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY a.occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEvent
	for rows.Next() {
		var e entity.AuditEvent
		var actorID *string
		if err := rows.Scan(&e.ID, &e.Action, &e.ProductID, &actorID, &e.Description, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.ActorID = deref(actorID)
		list = append(list, &e)
	}
	return list, rows.Err()
}
