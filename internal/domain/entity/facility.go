package entity

// Facility representa un hospital o centro de salud con posición geográfica fija.
// Es dato de referencia inmutable durante una ejecución.
type Facility struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
}

// Point devuelve las coordenadas (lat, lon) de la instalación.
func (f Facility) Point() Point {
	return Point{Lat: f.Latitude, Lon: f.Longitude}
}

// Point par de coordenadas en grados decimales (WGS-84).
type Point struct {
	Lat float64
	Lon float64
}
