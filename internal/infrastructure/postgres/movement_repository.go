package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla movements es append-only: no hay UPDATE
// ni DELETE en este adaptador por diseño del libro.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, party_kind, party_id, party_name,
	source_location_id, dest_location_id, reason, notes, performed_by,
	previous_quantity, new_quantity, reference, created_at`

// Create persiste un asiento del libro. Una violación del índice único de
// reference se devuelve como domain.ErrDuplicate (carrera de idempotencia).
func (r *MovementRepo) Create(movement *entity.MovementRecord) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Party.Kind, nullIfEmpty(movement.Party.ID), movement.Party.DisplayName,
		nullIfEmpty(movement.SourceLocationID), nullIfEmpty(movement.DestLocationID),
		movement.Reason, nullIfEmpty(movement.Notes), nullIfEmpty(movement.PerformedBy),
		movement.PreviousQuantity, movement.NewQuantity,
		nullIfEmpty(movement.Reference), movement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.getOne(query, id)
}

// GetByReference busca un asiento por su token de idempotencia.
func (r *MovementRepo) GetByReference(reference string) (*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE reference = $1`
	return r.getOne(query, reference)
}

func (r *MovementRepo) getOne(query string, arg any) (*entity.MovementRecord, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista asientos del más reciente al más antiguo según el filtro.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumnsQualified + ` FROM movements m WHERE 1=1`
	query, args := movementWhere(query, nil, &filter, 1)
	return r.list(query, args)
}

// ListByActorLocation limita a asientos cuyo actor pertenece a la sucursal
// (alcance de visibilidad para encargados de sucursal).
func (r *MovementRepo) ListByActorLocation(locationID string, filter repository.MovementFilter) ([]*entity.MovementRecord, error) {
	query := `
		SELECT ` + movementColumnsQualified + `
		FROM movements m
		JOIN users u ON u.id = m.performed_by
		WHERE u.location_id = $1`
	query, args := movementWhere(query, []any{locationID}, &filter, 2)
	return r.list(query, args)
}

const movementColumnsQualified = `m.id, m.product_id, m.type, m.quantity, m.party_kind, m.party_id, m.party_name,
	m.source_location_id, m.dest_location_id, m.reason, m.notes, m.performed_by,
	m.previous_quantity, m.new_quantity, m.reference, m.created_at`

// movementWhere arma las condiciones dinámicas compartidas por List y
// ListByActorLocation. Las columnas van calificadas con el alias m porque el
// listado por sucursal del actor hace join con users (created_at es ambiguo).
func movementWhere(query string, args []any, filter *repository.MovementFilter, pos int) (string, []any) {
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND (m.source_location_id = $%d OR m.dest_location_id = $%d)", pos, pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if len(filter.Types) > 0 {
		query += fmt.Sprintf(" AND m.type = ANY($%d)", pos)
		args = append(args, filter.Types)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)
	return query, args
}

func (r *MovementRepo) list(query string, args []any) ([]*entity.MovementRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.MovementRecord, error) {
	var m entity.MovementRecord
	var partyID, source, dest, notes, performedBy, reference *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity,
		&m.Party.Kind, &partyID, &m.Party.DisplayName,
		&source, &dest, &m.Reason, &notes, &performedBy,
		&m.PreviousQuantity, &m.NewQuantity, &reference, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Party.ID = deref(partyID)
	m.SourceLocationID = deref(source)
	m.DestLocationID = deref(dest)
	m.Notes = deref(notes)
	m.PerformedBy = deref(performedBy)
	m.Reference = deref(reference)
	return &m, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
