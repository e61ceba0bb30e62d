package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la cantidad actual de un producto en una sucursal.
// Sin fila devuelve un registro en cero (la fila se materializa en el primer Upsert).
func (r *StockRepo) Get(productID, locationID string) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, version, updated_at
		FROM location_stock WHERE product_id = $1 AND location_id = $2`
	var s entity.LocationStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationStock{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la cantidad y bloquea la fila (SELECT FOR UPDATE).
// Sin fila no hay nada que bloquear y se devuelve un registro en cero: el
// caller debe sostener ya el bloqueo de la fila del producto, que es el punto
// de serialización real por producto.
func (r *StockRepo) GetForUpdate(productID, locationID string) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, version, updated_at
		FROM location_stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.LocationStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationStock{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por producto y sucursal).
// Version crece en cada escritura; el CHECK quantity >= 0 de la tabla es la
// última línea de defensa del invariante de no-negatividad.
func (r *StockRepo) Upsert(stock *entity.LocationStock) error {
	query := `
		INSERT INTO location_stock (product_id, location_id, quantity, version, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              version = location_stock.version + 1,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct lista el desglose por sucursal de un producto.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, version, updated_at
		FROM location_stock WHERE product_id = $1 ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocationStock
	for rows.Next() {
		var s entity.LocationStock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumByProduct devuelve la cantidad total del producto sobre todas las sucursales.
func (r *StockRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM location_stock WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}
