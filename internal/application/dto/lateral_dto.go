package dto

// LateralSupplyRequest query de GET /api/lateral-supply. min_stock y max_km ausentes
// usan la configuración del servidor; max_km=0 desactiva el corte de distancia.
type LateralSupplyRequest struct {
	SourceFacilityID string   `query:"facility_id"`
	ItemName         string   `query:"item"`
	MinStock         *int     `query:"min_stock"`
	MaxDistanceKm    *float64 `query:"max_km"`
	Limit            int      `query:"limit"`
}

// LateralCandidateDTO instalación con excedente, ordenada por distancia.
type LateralCandidateDTO struct {
	FacilityDTO
	DistanceKm     float64 `json:"distance_km"`
	AvailableStock int     `json:"available_stock"`
}

// LateralSupplyResponse resultado del emparejamiento; Found=false no es un error.
type LateralSupplyResponse struct {
	Source     FacilityDTO           `json:"source"`
	ItemName   string                `json:"item_name"`
	Found      bool                  `json:"found"`
	Message    string                `json:"message"`
	Candidates []LateralCandidateDTO `json:"candidates"`
}
