package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FacilityDTO instalación con coordenadas (mapa).
type FacilityDTO struct {
	ID        string  `json:"facility_id"`
	Name      string  `json:"facility_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
