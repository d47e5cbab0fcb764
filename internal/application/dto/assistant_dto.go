package dto

// CreateSessionRequest body de POST /api/assistant/sessions.
type CreateSessionRequest struct {
	FacilityID string `json:"facility_id"`
}

// ChatMessageDTO mensaje de la conversación.
type ChatMessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionDTO sesión del asistente con su historial.
type SessionDTO struct {
	ID         string           `json:"id"`
	FacilityID string           `json:"facility_id,omitempty"`
	Messages   []ChatMessageDTO `json:"messages"`
}

// SendMessageRequest body de POST /api/assistant/sessions/:id/messages.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// AssistantReplyDTO respuesta del asistente a un mensaje.
type AssistantReplyDTO struct {
	SessionID string         `json:"session_id"`
	ItemName  string         `json:"item_name,omitempty"`
	Resolved  bool           `json:"resolved"`
	Reply     ChatMessageDTO `json:"reply"`
}
