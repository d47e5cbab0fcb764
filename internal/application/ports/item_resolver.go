package ports

import "context"

// ItemResolver traduce el texto libre del operador al nombre canónico de un insumo.
type ItemResolver interface {
	// ResolveItemName devuelve (nombre, true, nil) si encontró un insumo de knownItems,
	// ("", false, nil) si no. El error queda para fallos de infraestructura.
	ResolveItemName(ctx context.Context, freeText string, knownItems []string) (string, bool, error)
}
