package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/history"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// HistoryHandler expone la línea de tiempo de auditoría (protegido).
type HistoryHandler struct {
	uc *history.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *history.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// QueryHistory godoc
// @Summary      Línea de tiempo de auditoría
// @Description  Une movimientos de inventario y eventos de catálogo, del más
//
//	reciente al más antiguo. Roles no admin solo ven eventos de
//	actores de su propia sucursal.
//
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Movimientos que tocan la sucursal (origen o destino)"
// @Param        actions      query  string  false  "Acciones separadas por coma (stock_in, product_updated, ...)"
// @Param        from         query  string  false  "RFC3339 inclusivo"
// @Param        to           query  string  false  "RFC3339 inclusivo"
// @Param        limit        query  int     false  "Tamaño de página (default 50)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.HistoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) QueryHistory(c *fiber.Ctx) error {
	f, err := parseHistoryFilter(c)
	if err != nil {
		if errors.Is(err, errActorSinSucursal) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	events, err := h.uc.QueryHistory(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.HistoryListResponse{
		Items: make([]dto.HistoryEventResponse, 0, len(events)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: len(events)},
	}
	for _, e := range events {
		resp.Items = append(resp.Items, dto.ToHistoryEventResponse(e))
	}
	return c.JSON(resp)
}

// errActorSinSucursal corta el acceso de roles no admin sin sucursal asignada:
// sin sucursal no hay alcance que aplicar y no se puede mostrar nada.
var errActorSinSucursal = errors.New("usuario sin sucursal asignada")

// parseHistoryFilter arma el filtro desde la query string y aplica el alcance
// de visibilidad: un rol no admin queda limitado a su propia sucursal sin
// importar lo que pida.
func parseHistoryFilter(c *fiber.Ctx) (history.Filter, error) {
	f := history.Filter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}
	if raw := c.Query("actions"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				f.Actions = append(f.Actions, a)
			}
		}
	}
	// Compatibilidad con el filtro simple de movimientos.
	if t := c.Query("type"); t != "" {
		f.Actions = append(f.Actions, t)
	}
	for _, q := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		if raw := c.Query(q.name); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return f, fmt.Errorf("%s debe ser RFC3339", q.name)
			}
			*q.dst = &ts
		}
	}
	if GetRole(c) != entity.RoleAdmin {
		loc := GetLocationID(c)
		if loc == "" {
			return f, errActorSinSucursal
		}
		f.ActorLocationID = loc
	}
	return f, nil
}
