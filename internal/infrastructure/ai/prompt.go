package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// itemSystemPrompt define el rol del modelo y el formato de salida (vocabulario cerrado).
const itemSystemPrompt = `Eres un asistente de logística médica.
Tu única tarea es mapear la consulta del usuario a UNO de los nombres de insumo válidos que se te entregan.
Devuelve ÚNICAMENTE un objeto JSON válido con esta estructura exacta:
{"item": "<nombre exacto tal como aparece en la lista>"}
Si ningún insumo de la lista corresponde, devuelve {"item": null}.
No incluyas texto fuera del JSON.`

// itemPayload es el JSON que esperamos recibir del modelo.
type itemPayload struct {
	Item *string `json:"item"`
}

func buildItemPrompt(query string, validItems []string) string {
	list, _ := json.Marshal(validItems)
	return fmt.Sprintf("Insumos válidos: %s\n\nConsulta del usuario: %q", list, query)
}

// parseItemPayload extrae {"item": ...} del texto del modelo.
func parseItemPayload(rawText string) (*string, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var payload itemPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de insumo: %w (JSON extraído: %s)", err, cleanJSON)
	}
	if payload.Item != nil {
		item := strings.TrimSpace(*payload.Item)
		if item == "" {
			return nil, nil
		}
		return &item, nil
	}
	return nil, nil
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
// Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
