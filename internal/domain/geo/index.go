package geo

import (
	"fmt"
	"sort"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// Neighbor instalación candidata con su distancia (sin redondear) al origen.
type Neighbor struct {
	Facility   entity.Facility
	DistanceKm float64
}

// Rank ordena las instalaciones por distancia ascendente al origen, excluyendo
// al propio origen (mismo ID). Los empates conservan el orden de entrada.
// No modifica el slice recibido.
func Rank(source entity.Facility, facilities []entity.Facility) []Neighbor {
	origin := source.Point()
	out := make([]Neighbor, 0, len(facilities))
	for _, f := range facilities {
		if f.ID == source.ID {
			continue
		}
		out = append(out, Neighbor{Facility: f, DistanceKm: Distance(origin, f.Point())})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Index índice en memoria de instalaciones por ID, en el orden en que se cargaron.
type Index struct {
	facilities []entity.Facility
	byID       map[string]int
}

// NewIndex construye el índice. IDs vacíos, duplicados o coordenadas fuera de rango
// devuelven domain.ErrInvalidInput / domain.ErrDuplicate.
func NewIndex(facilities []entity.Facility) (*Index, error) {
	idx := &Index{
		facilities: make([]entity.Facility, len(facilities)),
		byID:       make(map[string]int, len(facilities)),
	}
	copy(idx.facilities, facilities)
	for i, f := range idx.facilities {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: instalación sin ID en la posición %d", domain.ErrInvalidInput, i)
		}
		if !ValidPoint(f.Point()) {
			return nil, fmt.Errorf("%w: coordenadas inválidas para %s", domain.ErrInvalidInput, f.ID)
		}
		if _, dup := idx.byID[f.ID]; dup {
			return nil, fmt.Errorf("%w: instalación %s", domain.ErrDuplicate, f.ID)
		}
		idx.byID[f.ID] = i
	}
	return idx, nil
}

// Len número de instalaciones indexadas.
func (x *Index) Len() int { return len(x.facilities) }

// Facility busca una instalación por ID.
func (x *Index) Facility(id string) (entity.Facility, bool) {
	i, ok := x.byID[id]
	if !ok {
		return entity.Facility{}, false
	}
	return x.facilities[i], true
}

// Nearest devuelve las k instalaciones más cercanas a la indicada (k <= 0 = todas).
func (x *Index) Nearest(id string, k int) ([]Neighbor, error) {
	src, ok := x.Facility(id)
	if !ok {
		return nil, fmt.Errorf("%w: instalación %s", domain.ErrNotFound, id)
	}
	ranked := Rank(src, x.facilities)
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
