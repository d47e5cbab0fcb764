// Package geo contiene el índice geográfico de instalaciones: distancia geodésica
// sobre el elipsoide WGS-84 y búsqueda de vecinos más cercanos.
package geo

import (
	"math"

	"github.com/tidwall/geodesic"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// Distance devuelve la distancia geodésica (elipsoidal) entre a y b en kilómetros.
func Distance(a, b entity.Point) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)
	return meters / 1000
}

// RoundKm redondea a un decimal para presentación.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// ValidPoint informa si las coordenadas están dentro de los rangos geográficos.
func ValidPoint(p entity.Point) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
