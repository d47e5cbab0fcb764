package ports

import "context"

// LLMService define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// ExtractItem pide al modelo que identifique cuál de validItems menciona query.
	// Devuelve nil cuando el modelo responde {"item": null}. El contexto debe llevar
	// un timeout para evitar bloqueos en llamadas externas.
	ExtractItem(ctx context.Context, query string, validItems []string) (*string, error)
}
