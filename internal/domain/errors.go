package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrStoreUnavailable  = errors.New("almacén de datos no disponible")
	ErrInvariantViolated = errors.New("stock de cierre inconsistente")
)
