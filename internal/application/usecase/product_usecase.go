package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ProductUseCase ciclo de vida de catálogo para productos. Las cantidades se
// mutan solo vía movimientos; aquí se maneja el resto del registro maestro y
// cada cambio deja un evento de auditoría para la línea de tiempo.
type ProductUseCase struct {
	repo      repository.ProductRepository
	stockRepo repository.StockRepository
	auditRepo repository.AuditRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stockRepo repository.StockRepository, auditRepo repository.AuditRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, stockRepo: stockRepo, auditRepo: auditRepo}
}

// Create crea un producto. Nace sin stock (out_of_stock) y registra el evento
// product_created.
func (uc *ProductUseCase) Create(actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Category:     in.Category,
		Brand:        in.Brand,
		Supplier:     in.Supplier,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		Status:       entity.StatusOutOfStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.recordEvent(entity.AuditProductCreated, product.ID, actorID,
		fmt.Sprintf("producto creado: %s (%s)", product.Name, product.SKU), now)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto y registra product_updated. El único camino
// para fijar o limpiar el override discontinued es este: Status admite
// "discontinued" o "" (limpiar y re-derivar desde la cantidad actual).
func (uc *ProductUseCase) Update(actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	switch {
	case in.Status == nil:
		// sin cambio de override
	case *in.Status == entity.StatusDiscontinued:
		product.Status = entity.StatusDiscontinued
	case *in.Status == "":
		total, err := uc.stockRepo.SumByProduct(id)
		if err != nil {
			return nil, err
		}
		product.Status = domaininv.DeriveStatus(total, product.MinStock)
	default:
		return nil, domain.ErrInvalidInput
	}
	// Si cambió el umbral, el estado derivado puede cambiar también.
	if in.MinStock != nil && product.Status != entity.StatusDiscontinued {
		total, err := uc.stockRepo.SumByProduct(id)
		if err != nil {
			return nil, err
		}
		product.Status = domaininv.DeriveStatus(total, product.MinStock)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.recordEvent(entity.AuditProductUpdated, product.ID, actorID,
		fmt.Sprintf("producto editado: %s (%s)", product.Name, product.SKU), product.UpdatedAt)
	return toProductResponse(product), nil
}

// Delete da de baja un producto: lo marca discontinued y registra
// product_deleted. No hay borrado físico, el libro de movimientos del
// producto debe seguir siendo auditable.
func (uc *ProductUseCase) Delete(actorID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.UpdateStatus(id, entity.StatusDiscontinued); err != nil {
		return err
	}
	uc.recordEvent(entity.AuditProductDeleted, id, actorID,
		fmt.Sprintf("producto dado de baja: %s (%s)", product.Name, product.SKU), time.Now())
	return nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(list)},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	return resp, nil
}

func (uc *ProductUseCase) recordEvent(action, productID, actorID, description string, at time.Time) {
	// La línea de tiempo es best-effort respecto a la operación de catálogo;
	// un fallo aquí no revierte el cambio ya persistido.
	_ = uc.auditRepo.Create(&entity.AuditEvent{
		ID:          uuid.New().String(),
		Action:      action,
		ProductID:   productID,
		ActorID:     actorID,
		Description: description,
		OccurredAt:  at,
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		Brand:        p.Brand,
		Supplier:     p.Supplier,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
