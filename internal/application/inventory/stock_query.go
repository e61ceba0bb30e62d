package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el índice de cantidades.
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(productRepo repository.ProductRepository, stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo, stockRepo: stockRepo}
}

// GetProductStock devuelve el desglose por sucursal y el total de un producto.
// El total se recalcula siempre como la suma del desglose.
func (uc *StockQueryUseCase) GetProductStock(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	levels, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductStockResponse{
		ProductID:   productID,
		Status:      product.Status,
		PerLocation: make([]dto.LocationQuantityDTO, 0, len(levels)),
	}
	for _, lvl := range levels {
		resp.TotalQuantity += lvl.Quantity
		resp.PerLocation = append(resp.PerLocation, dto.LocationQuantityDTO{
			LocationID: lvl.LocationID,
			Quantity:   lvl.Quantity,
			Version:    lvl.Version,
		})
	}
	return resp, nil
}
