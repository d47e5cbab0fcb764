package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

// FacilityHandler endpoints de lectura de instalaciones.
type FacilityHandler struct {
	repo repository.FacilityRepository
}

// NewFacilityHandler construye el handler.
func NewFacilityHandler(repo repository.FacilityRepository) *FacilityHandler {
	return &FacilityHandler{repo: repo}
}

// List godoc
// @Summary  Listar instalaciones con coordenadas
// @Tags     facilities
// @Security Bearer
// @Produce  json
// @Success  200  {array}   dto.FacilityDTO
// @Failure  503  {object}  dto.ErrorResponse
// @Router   /api/facilities [get]
func (h *FacilityHandler) List(c *fiber.Ctx) error {
	list, err := h.repo.List(c.Context())
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err))
	}
	out := make([]dto.FacilityDTO, 0, len(list))
	for _, f := range list {
		out = append(out, toFacilityDTO(f))
	}
	return c.JSON(out)
}

// GetByID GET /api/facilities/:id
func (h *FacilityHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	f, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err))
	}
	if f == nil {
		return writeError(c, fmt.Errorf("instalación %s: %w", id, domain.ErrNotFound))
	}
	return c.JSON(toFacilityDTO(*f))
}

func toFacilityDTO(f entity.Facility) dto.FacilityDTO {
	return dto.FacilityDTO{ID: f.ID, Name: f.Name, Latitude: f.Latitude, Longitude: f.Longitude}
}

// facilityScope un operador de instalación solo consulta la suya.
func facilityScope(c *fiber.Ctx, facilityID string) error {
	own := GetFacilityID(c)
	if GetRole(c) == entity.RoleOperador && own != "" && facilityID != own {
		return fmt.Errorf("instalación %s fuera del alcance del operador: %w", facilityID, domain.ErrForbidden)
	}
	return nil
}
