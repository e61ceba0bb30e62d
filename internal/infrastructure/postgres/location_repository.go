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
	"github.com/jhoicas/Inventario-ledger/pkg/normalize"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
// La columna name_norm guarda el nombre normalizado (sin mayúsculas ni
// acentos) para que la resolución de contrapartes encuentre "Bodega Central"
// aunque llegue escrito "bodega central".
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de sucursales.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create inserta una sucursal. Nombre normalizado repetido -> domain.ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, name, name_norm, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, normalize.Name(location.Name), location.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID. Devuelve (nil, nil) si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM locations WHERE id = $1`
	return r.getOne(query, id)
}

// GetByName busca por nombre normalizado.
func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM locations WHERE name_norm = $1`
	return r.getOne(query, normalize.Name(name))
}

func (r *LocationRepo) getOne(query string, arg any) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza nombre y dirección de una sucursal.
func (r *LocationRepo) Update(location *entity.Location) error {
	query := `
		UPDATE locations
		SET name = $2, name_norm = $3, address = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, normalize.Name(location.Name), location.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// List lista sucursales ordenadas por nombre.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, name, address, created_at, updated_at FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
