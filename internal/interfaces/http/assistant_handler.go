package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swiftstock-api/internal/application/assistant"
	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

const maxMessageLen = 2000

// AssistantHandler sesiones de chat con el asistente de inventario.
type AssistantHandler struct {
	assistant  *assistant.Assistant
	sessions   *assistant.SessionStore
	facilities repository.FacilityRepository
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(a *assistant.Assistant, sessions *assistant.SessionStore, facilities repository.FacilityRepository) *AssistantHandler {
	return &AssistantHandler{assistant: a, sessions: sessions, facilities: facilities}
}

// CreateSession godoc
// @Summary      Crear sesión del asistente
// @Description  facility_id es opcional (por defecto la del token) y se usa como origen de la búsqueda lateral.
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSessionRequest  false  "instalación del operador"
// @Success      201   {object}  dto.SessionDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assistant/sessions [post]
func (h *AssistantHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo de la petición inválido")
		}
	}
	facilityID := strings.TrimSpace(req.FacilityID)
	if facilityID == "" {
		facilityID = GetFacilityID(c)
	}
	if facilityID != "" {
		if err := facilityScope(c, facilityID); err != nil {
			return writeError(c, err)
		}
		f, err := h.facilities.GetByID(c.Context(), facilityID)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err))
		}
		if f == nil {
			return writeError(c, fmt.Errorf("instalación %s: %w", facilityID, domain.ErrNotFound))
		}
	}

	s := h.sessions.Create(facilityID)
	return c.Status(fiber.StatusCreated).JSON(toSessionDTO(s))
}

// GetSession GET /api/assistant/sessions/:id
func (h *AssistantHandler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionDTO(s))
}

// SendMessage godoc
// @Summary      Enviar mensaje al asistente
// @Description  Identifica el insumo y responde con estado de red, compras y transferencia lateral.
//               Si el insumo no se reconoce la respuesta lo indica (resolved=false).
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID de la sesión"
// @Param        body  body      dto.SendMessageRequest  true  "texto del operador"
// @Success      200   {object}  dto.AssistantReplyDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assistant/sessions/{id}/messages [post]
func (h *AssistantHandler) SendMessage(c *fiber.Ctx) error {
	id := c.Params("id")
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo de la petición inválido")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return badRequest(c, "VALIDATION", "text es obligatorio")
	}
	if len(text) > maxMessageLen {
		return badRequest(c, "VALIDATION", fmt.Sprintf("text supera %d caracteres", maxMessageLen))
	}

	s, err := h.session(c, id)
	if err != nil {
		return writeError(c, err)
	}

	reply := h.assistant.Reply(c.Context(), s, text)
	userMsg := assistant.Message{Role: assistant.RoleUser, Content: text}
	if _, err := h.sessions.Append(id, userMsg, reply.Message); err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.AssistantReplyDTO{
		SessionID: id,
		ItemName:  reply.ItemName,
		Resolved:  reply.Resolved,
		Reply:     dto.ChatMessageDTO{Role: reply.Message.Role, Content: reply.Message.Content},
	})
}

// session busca la sesión y aplica el alcance del operador sobre su instalación.
func (h *AssistantHandler) session(c *fiber.Ctx, id string) (*assistant.Session, error) {
	s, ok := h.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
	}
	if err := facilityScope(c, s.FacilityID); err != nil {
		return nil, err
	}
	return s, nil
}

func toSessionDTO(s *assistant.Session) dto.SessionDTO {
	out := dto.SessionDTO{ID: s.ID, FacilityID: s.FacilityID, Messages: make([]dto.ChatMessageDTO, 0, len(s.Messages))}
	for _, m := range s.Messages {
		out.Messages = append(out.Messages, dto.ChatMessageDTO{Role: m.Role, Content: m.Content})
	}
	return out
}
