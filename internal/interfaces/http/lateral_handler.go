package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/application/lateral"
)

// LateralHandler búsqueda de excedente en instalaciones cercanas.
type LateralHandler struct {
	matcher *lateral.Matcher
}

// NewLateralHandler construye el handler.
func NewLateralHandler(m *lateral.Matcher) *LateralHandler {
	return &LateralHandler{matcher: m}
}

// FindSupply godoc
// @Summary      Transferencia lateral
// @Description  Instalaciones más cercanas al origen con stock del insumo por encima del umbral.
//               Incluye coordenadas de origen y candidatos para dibujar el mapa.
// @Tags         lateral
// @Security     Bearer
// @Produce      json
// @Param        facility_id  query  string   true   "instalación solicitante"
// @Param        item         query  string   true   "insumo"
// @Param        min_stock    query  int      false  "umbral de stock; ausente = MATCHER_MIN_STOCK, 0 = cualquier stock"
// @Param        max_km       query  number   false  "distancia máxima; ausente = MATCHER_MAX_DISTANCE_KM, 0 = sin límite"
// @Param        limit        query  int      false  "candidatos (por defecto MATCHER_LIMIT)"
// @Success      200  {object}  dto.LateralSupplyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lateral-supply [get]
func (h *LateralHandler) FindSupply(c *fiber.Ctx) error {
	var req dto.LateralSupplyRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	if (req.MinStock != nil && *req.MinStock < 0) || (req.MaxDistanceKm != nil && *req.MaxDistanceKm < 0) || req.Limit < 0 {
		return badRequest(c, "VALIDATION", "min_stock, max_km y limit no pueden ser negativos")
	}
	if req.SourceFacilityID == "" {
		req.SourceFacilityID = GetFacilityID(c)
	}
	if err := facilityScope(c, req.SourceFacilityID); err != nil {
		return writeError(c, err)
	}

	matches, err := h.matcher.FindLateralSupply(c.Context(), lateral.Query{
		SourceFacilityID: req.SourceFacilityID,
		ItemName:         req.ItemName,
		MinStock:         req.MinStock,
		MaxDistanceKm:    req.MaxDistanceKm,
		Limit:            req.Limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	source, err := h.matcher.Source(c.Context(), req.SourceFacilityID)
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.LateralSupplyResponse{
		Source:     toFacilityDTO(*source),
		ItemName:   req.ItemName,
		Found:      len(matches) > 0,
		Candidates: make([]dto.LateralCandidateDTO, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Candidates = append(resp.Candidates, dto.LateralCandidateDTO{
			FacilityDTO:    toFacilityDTO(m.Candidate),
			DistanceKm:     m.DistanceKm,
			AvailableStock: m.AvailableStock,
		})
	}
	if resp.Found {
		resp.Message = fmt.Sprintf("%d instalación(es) con excedente de %s cerca de %s", len(matches), req.ItemName, source.Name)
	} else {
		resp.Message = fmt.Sprintf("No hay excedente de %s cerca de %s", req.ItemName, source.Name)
	}
	return c.JSON(resp)
}
