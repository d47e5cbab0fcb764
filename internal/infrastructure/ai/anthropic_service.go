package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/swiftstock-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
type AnthropicService struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string, timeout time.Duration) *AnthropicService {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &AnthropicService{
		apiKey:     apiKey,
		model:      model,
		endpoint:   anthropicMessagesURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithEndpoint reemplaza la URL de la API (proxies o pruebas).
func (s *AnthropicService) WithEndpoint(url string) *AnthropicService {
	s.endpoint = url
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractItem envía la consulta y la lista cerrada de insumos a Claude.
func (s *AnthropicService) ExtractItem(ctx context.Context, query string, validItems []string) (*string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 128,
		System:    itemSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildItemPrompt(query, validItems)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return parseItemPayload(anthResp.Content[0].Text)
}
