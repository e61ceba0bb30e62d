package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// maxConflictRetries reintentos ante conflictos de serialización antes de
// devolver domain.ErrConflict al caller.
const maxConflictRetries = 3

// ApplyMovementUseCase aplica movimientos de inventario de forma transaccional
// (stock_in, stock_out, transfer, adjustment) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Es el único punto de mutación de
// cantidades: cada commit deja exactamente un asiento en el libro y el stock
// consistente con él.
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	resolver     *PartyResolver
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	resolver *PartyResolver,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		resolver:     resolver,
	}
}

// ApplyMovementInput entrada para aplicar un movimiento.
// Para stock_in: DestLocationID y Quantity > 0. Para stock_out y adjustment:
// SourceLocationID (adjustment con Quantity como delta con signo, distinto de 0).
// Para transfer: SourceLocationID, DestLocationID distintos y Quantity > 0.
// Reference es un token de idempotencia opcional: reenviar el mismo token
// devuelve el asiento original sin volver a aplicar cantidades.
type ApplyMovementInput struct {
	ProductID        string
	Type             string
	Quantity         int64
	SourceLocationID string
	DestLocationID   string
	PartyKind        string // hint: supplier, client, location, disposal
	PartyID          string
	DisposalDetail   string // sub-razón libre cuando la baja es "other"
	Reason           string
	Notes            string
	PerformedBy      string
	Reference        string
}

// ApplyResult asiento confirmado; Replayed indica repetición idempotente
// (no hubo efecto nuevo sobre cantidades).
type ApplyResult struct {
	Record   *entity.MovementRecord
	Replayed bool
}

// Apply valida el comando, resuelve la contraparte y lo aplica dentro de una
// transacción. Sin efectos parciales: cualquier falla posterior al inicio de
// la tx revierte mutación de stock, asiento y estado juntos. Los conflictos
// de serialización se reintentan hasta maxConflictRetries veces.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input ApplyMovementInput) (*ApplyResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Verificación rápida fuera de la tx; el producto se relee con bloqueo
	// dentro de applyInTx, esa lectura es la autoritativa.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.checkLocations(input); err != nil {
		return nil, err
	}

	// La contraparte se resuelve una sola vez al escribir y queda inmutable
	// en el asiento; nunca se re-infiere en lecturas.
	party := uc.resolver.Resolve(input.PartyKind, input.PartyID, input.DisposalDetail)

	var result *ApplyResult
	for attempt := 0; ; attempt++ {
		result = nil
		err = uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
			productRepo repository.ProductRepository,
		) error {
			r, err := uc.applyInTx(movRepo, stockRepo, productRepo, input, party)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		// ErrDuplicate solo puede venir de una carrera sobre el índice único de
		// reference: el reintento encuentra el asiento previo y lo devuelve.
		if (errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrDuplicate)) && attempt < maxConflictRetries {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validateInput valida tipo, cantidad, razón y sucursales requeridas según tipo.
func validateInput(input ApplyMovementInput) error {
	if input.ProductID == "" || input.Reason == "" {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeStockIn:
		if input.DestLocationID == "" || input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeStockOut:
		if input.SourceLocationID == "" || input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if input.SourceLocationID == "" || input.DestLocationID == "" ||
			input.SourceLocationID == input.DestLocationID || input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.SourceLocationID == "" || input.Quantity == 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// checkLocations verifica que las sucursales referenciadas existan.
func (uc *ApplyMovementUseCase) checkLocations(input ApplyMovementInput) error {
	for _, id := range []string{input.SourceLocationID, input.DestLocationID} {
		if id == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}
	}
	return nil
}

// applyInTx ejecuta la lógica por tipo dentro de la transacción activa.
func (uc *ApplyMovementUseCase) applyInTx(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	input ApplyMovementInput,
	party entity.Party,
) (*ApplyResult, error) {
	// Idempotencia: si el token ya fue confirmado, devolver el asiento previo
	// sin tocar cantidades (reintento seguro del cliente).
	if input.Reference != "" {
		prior, err := movRepo.GetByReference(input.Reference)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			return &ApplyResult{Record: prior, Replayed: true}, nil
		}
	}

	// Bloquear la fila del producto: un escritor a la vez por producto.
	// Las filas de location_stock no alcanzan como punto de serialización
	// porque en el primer movimiento sobre una sucursal la fila aún no existe
	// (FOR UPDATE sin fila no bloquea nada) y porque movimientos sobre
	// sucursales distintas no comparten fila. El bloqueo también garantiza
	// MinStock/Status frescos: un cambio de catálogo entre reintentos se ve aquí.
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	now := time.Now()
	var prev, next int64

	switch input.Type {
	case entity.MovementTypeStockIn:
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.DestLocationID)
		if err != nil {
			return nil, err
		}
		prev = stock.Quantity
		next = prev + input.Quantity
		stock.Quantity = next
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return nil, err
		}

	case entity.MovementTypeStockOut:
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.SourceLocationID)
		if err != nil {
			return nil, err
		}
		if stock.Quantity < input.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		prev = stock.Quantity
		next = prev - input.Quantity
		stock.Quantity = next
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return nil, err
		}

	case entity.MovementTypeAdjustment:
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.SourceLocationID)
		if err != nil {
			return nil, err
		}
		prev = stock.Quantity
		next = prev + input.Quantity // delta con signo
		if next < 0 {
			return nil, domain.ErrInsufficientStock
		}
		stock.Quantity = next
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return nil, err
		}

	case entity.MovementTypeTransfer:
		p, err := uc.doTransfer(stockRepo, input, now)
		if err != nil {
			return nil, err
		}
		prev, next = p[0], p[1]
	}

	// Recalcular estado con la cantidad total dentro de la misma tx.
	// El override discontinued se preserva: la cantidad cambia, el estado no.
	total, err := stockRepo.SumByProduct(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Status != entity.StatusDiscontinued {
		status := domaininv.DeriveStatus(total, product.MinStock)
		if status != product.Status {
			if err := productRepo.UpdateStatus(input.ProductID, status); err != nil {
				return nil, err
			}
		}
	}

	record := &entity.MovementRecord{
		ID:               uuid.New().String(),
		ProductID:        input.ProductID,
		Type:             input.Type,
		Quantity:         input.Quantity,
		Party:            party,
		SourceLocationID: input.SourceLocationID,
		DestLocationID:   input.DestLocationID,
		Reason:           input.Reason,
		Notes:            input.Notes,
		PerformedBy:      input.PerformedBy,
		PreviousQuantity: prev,
		NewQuantity:      next,
		Reference:        input.Reference,
		CreatedAt:        now,
	}
	if err := movRepo.Create(record); err != nil {
		return nil, err
	}
	return &ApplyResult{Record: record}, nil
}

// doTransfer resta en origen y suma en destino dentro de la misma tx.
// Bloquea las dos filas en orden lexicográfico de sucursal para evitar
// deadlocks entre transferencias cruzadas. Devuelve previo/nuevo del origen.
func (uc *ApplyMovementUseCase) doTransfer(
	stockRepo repository.StockRepository,
	input ApplyMovementInput,
	now time.Time,
) ([2]int64, error) {
	first, second := input.SourceLocationID, input.DestLocationID
	if second < first {
		first, second = second, first
	}
	locked := map[string]*entity.LocationStock{}
	for _, locID := range []string{first, second} {
		stock, err := stockRepo.GetForUpdate(input.ProductID, locID)
		if err != nil {
			return [2]int64{}, err
		}
		locked[locID] = stock
	}
	origin := locked[input.SourceLocationID]
	dest := locked[input.DestLocationID]

	if origin.Quantity < input.Quantity {
		return [2]int64{}, domain.ErrInsufficientStock
	}
	prev := origin.Quantity
	origin.Quantity -= input.Quantity
	dest.Quantity += input.Quantity
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if err := stockRepo.Upsert(origin); err != nil {
		return [2]int64{}, err
	}
	if err := stockRepo.Upsert(dest); err != nil {
		return [2]int64{}, err
	}
	return [2]int64{prev, origin.Quantity}, nil
}
