package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/history"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario (protegido).
type InventoryHandler struct {
	apply     *inventory.ApplyMovementUseCase
	historyUC *history.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(apply *inventory.ApplyMovementUseCase, historyUC *history.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{apply: apply, historyUC: historyUC}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento de inventario
// @Description  Aplica stock_in, stock_out, transfer o adjustment de forma atómica.
//
//	Con reference repetido devuelve el asiento original (200) sin re-aplicar.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, type, quantity, source/dest según tipo, party_kind, reason, reference (idempotencia)"
// @Success      201   {object}  dto.MovementResponse
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.apply.Apply(c.Context(), inventory.ApplyMovementInput{
		ProductID:        in.ProductID,
		Type:             in.Type,
		Quantity:         in.Quantity,
		SourceLocationID: in.SourceLocationID,
		DestLocationID:   in.DestLocationID,
		PartyKind:        in.PartyKind,
		PartyID:          in.PartyID,
		DisposalDetail:   in.DisposalDetail,
		Reason:           in.Reason,
		Notes:            in.Notes,
		PerformedBy:      userID,
		Reference:        in.Reference,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrProductNotFound || err == domain.ErrLocationNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o sucursal no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	status := fiber.StatusCreated
	if result.Replayed {
		// Reenvío idempotente: mismo asiento, sin efecto nuevo.
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.ToMovementResponse(result.Record))
}

// ListMovements godoc
// @Summary      Listar movimientos del libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por sucursal (origen o destino)"
// @Param        type         query  string  false  "stock_in | stock_out | transfer | adjustment"
// @Param        from         query  string  false  "RFC3339 inclusivo"
// @Param        to           query  string  false  "RFC3339 inclusivo"
// @Param        limit        query  int     false  "Tamaño de página (default 50)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f, err := parseHistoryFilter(c)
	if err != nil {
		if errors.Is(err, errActorSinSucursal) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	records, err := h.historyUC.QueryMovements(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(records)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: len(records)},
	}
	for _, m := range records {
		resp.Items = append(resp.Items, dto.ToMovementResponse(m))
	}
	return c.JSON(resp)
}
