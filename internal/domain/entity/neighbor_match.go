package entity

// NeighborMatch candidato de transferencia lateral: una instalación con excedente
// del insumo consultado, a cierta distancia de la instalación solicitante.
// Se calcula por consulta y no se persiste.
type NeighborMatch struct {
	Source         Facility
	Candidate      Facility
	DistanceKm     float64 // redondeado a 1 decimal
	AvailableStock int
}
