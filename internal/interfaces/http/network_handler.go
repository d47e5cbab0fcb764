package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/application/network"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// NetworkHandler estado de la red (corte más reciente).
type NetworkHandler struct {
	uc *network.UseCase
}

// NewNetworkHandler construye el handler.
func NewNetworkHandler(uc *network.UseCase) *NetworkHandler {
	return &NetworkHandler{uc: uc}
}

// Status godoc
// @Summary  Estado de stock por instalación e insumo
// @Tags     network
// @Security Bearer
// @Produce  json
// @Param    item         query  string  false  "nombre exacto del insumo"
// @Param    criticality  query  string  false  "High | Medium | Low"
// @Param    status       query  string  false  "CRITICAL | WARNING | LOW | HEALTHY"
// @Success  200  {array}   dto.NetworkStatusRowDTO
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  503  {object}  dto.ErrorResponse
// @Router   /api/network/status [get]
func (h *NetworkHandler) Status(c *fiber.Ctx) error {
	var q dto.NetworkStatusFilter
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	f := network.Filter{ItemName: strings.TrimSpace(q.ItemName)}
	if q.Criticality != "" {
		crit, ok := entity.ParseCriticality(q.Criticality)
		if !ok {
			return badRequest(c, "VALIDATION", "criticality debe ser High, Medium o Low")
		}
		f.Criticality = crit
	}
	if q.Status != "" {
		st, ok := parseStockStatus(q.Status)
		if !ok {
			return badRequest(c, "VALIDATION", "status debe ser CRITICAL, WARNING, LOW o HEALTHY")
		}
		f.Status = st
	}

	rows, err := h.uc.Status(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// Items GET /api/network/items?criticality=High
// Insumos ordenados por instalaciones en quiebre (desc) con etiqueta para el selector.
func (h *NetworkHandler) Items(c *fiber.Ctx) error {
	var crit entity.Criticality
	if raw := c.Query("criticality"); raw != "" {
		var ok bool
		if crit, ok = entity.ParseCriticality(raw); !ok {
			return badRequest(c, "VALIDATION", "criticality debe ser High, Medium o Low")
		}
	}
	items, err := h.uc.Items(c.Context(), crit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// Levels GET /api/network/levels
func (h *NetworkHandler) Levels(c *fiber.Ctx) error {
	levels, err := h.uc.CriticalityLevels(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if levels == nil {
		levels = []entity.Criticality{}
	}
	return c.JSON(levels)
}

// KPIs GET /api/network/kpis?item=...
func (h *NetworkHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.uc.KPIs(c.Context(), strings.TrimSpace(c.Query("item")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(kpis)
}

func parseStockStatus(s string) (entity.StockStatus, bool) {
	st := entity.StockStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case entity.StockStatusCritical, entity.StockStatusWarning, entity.StockStatusLow, entity.StockStatusHealthy:
		return st, true
	}
	return "", false
}
