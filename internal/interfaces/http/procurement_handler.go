package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/application/procurement"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// ProcurementHandler lista de compras sugeridas.
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// ReorderList godoc
// @Summary  Lista de compras (quiebre previsto dentro del horizonte)
// @Tags     procurement
// @Security Bearer
// @Produce  json
// @Param    priority  query  string  false  "URGENT | WATCH"
// @Success  200  {array}   dto.ReorderSuggestionDTO
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  503  {object}  dto.ErrorResponse
// @Router   /api/procurement/reorder-list [get]
func (h *ProcurementHandler) ReorderList(c *fiber.Ctx) error {
	priority := strings.ToUpper(strings.TrimSpace(c.Query("priority")))
	switch entity.ReorderPriority(priority) {
	case "", entity.ReorderPriorityUrgent, entity.ReorderPriorityWatch:
	default:
		return badRequest(c, "VALIDATION", "priority debe ser URGENT o WATCH")
	}

	rows, err := h.uc.ReorderList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if priority != "" {
		filtered := make([]dto.ReorderSuggestionDTO, 0, len(rows))
		for _, r := range rows {
			if r.Priority == priority {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	return c.JSON(rows)
}

// ReorderPDF godoc
// @Summary  Lista de compras en PDF (A4 horizontal)
// @Tags     procurement
// @Security Bearer
// @Produce  application/pdf
// @Success  200  {file}    binary
// @Failure  403  {object}  dto.ErrorResponse
// @Failure  503  {object}  dto.ErrorResponse
// @Router   /api/procurement/reorder-list/pdf [get]
func (h *ProcurementHandler) ReorderPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ReorderPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("reorder_list_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
