package repository

import (
	"context"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// FacilityRepository define el puerto de lectura para instalaciones (DIP).
type FacilityRepository interface {
	// List devuelve todas las instalaciones en orden estable (por ID).
	List(ctx context.Context) ([]entity.Facility, error)
	// GetByID devuelve (nil, nil) si la instalación no existe.
	GetByID(ctx context.Context, id string) (*entity.Facility, error)
}
