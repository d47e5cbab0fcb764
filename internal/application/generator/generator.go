// Package generator genera datos sintéticos de inventario con un escenario de crisis:
// las primeras instalaciones ("víctimas") quedan sin el insumo del escenario y su
// vecina más cercana ("salvadora") con excedente.
package generator

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/geo"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
)

// Range rango cerrado [Min, Max].
type Range struct{ Min, Max int }

// Config parámetros de generación.
type Config struct {
	Victims      int       // primeras N instalaciones en crisis
	ScenarioItem string    // insumo forzado en víctimas y salvadoras
	ItemsPerSite Range     // insumos por instalación
	Opening      Range     // apertura de filas normales
	Received     Range
	Issued       Range
	LeadTime     Range
	Days         int       // días de historial que terminan en Date
	Date         time.Time // último día generado
}

// DefaultConfig 3 víctimas, 20–25 insumos, apertura 100–400, recibido 0–30,
// despachado 5–25, lead time 2–6, un día (hoy).
func DefaultConfig() Config {
	return Config{
		Victims:      3,
		ScenarioItem: ScenarioItem,
		ItemsPerSite: Range{20, 25},
		Opening:      Range{100, 400},
		Received:     Range{0, 30},
		Issued:       Range{5, 25},
		LeadTime:     Range{2, 6},
		Days:         1,
		Date:         time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// Stock del escenario: víctima 10/0/10 → 0; salvadora 600/0/5 → 595.
var (
	victimStock = [3]int{10, 0, 10}
	saviorStock = [3]int{600, 0, 5}
)

// Pair víctima y su vecina más cercana.
type Pair struct {
	Victim     entity.Facility
	Savior     entity.Facility
	DistanceKm float64
}

// Scenario resumen del escenario generado.
type Scenario struct {
	Item  string
	Pairs []Pair
}

// Generator generador determinista dado el rng.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	newID   func() string
	catalog []CatalogItem
}

// New construye el generador. rng nil usa una semilla aleatoria; newID nil usa UUID v4.
func New(cfg Config, rng *rand.Rand, newID func() string) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if newID == nil {
		newID = uuid.NewString
	}
	if cfg.Days <= 0 {
		cfg.Days = 1
	}
	return &Generator{cfg: cfg, rng: rng, newID: newID, catalog: MasterCatalog()}
}

// NewSeeded generador con semilla fija (reproducible).
func NewSeeded(cfg Config, seed uint64) *Generator {
	return New(cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil)
}

func (g *Generator) between(r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + g.rng.IntN(r.Max-r.Min+1)
}

// Plan calcula las parejas víctima/salvadora con el índice geográfico.
func (g *Generator) Plan(facilities []entity.Facility) (Scenario, error) {
	idx, err := geo.NewIndex(facilities)
	if err != nil {
		return Scenario{}, err
	}
	sc := Scenario{Item: g.cfg.ScenarioItem}
	n := max(0, min(g.cfg.Victims, len(facilities)))
	for _, victim := range facilities[:n] {
		nearest, err := idx.Nearest(victim.ID, 1)
		if err != nil {
			return Scenario{}, err
		}
		if len(nearest) == 0 {
			continue
		}
		sc.Pairs = append(sc.Pairs, Pair{Victim: victim, Savior: nearest[0].Facility, DistanceKm: geo.RoundKm(nearest[0].DistanceKm)})
	}
	return sc, nil
}

// Generate produce los cortes de todas las instalaciones, en el orden de entrada.
// Una instalación que es víctima y salvadora a la vez se trata como víctima.
func (g *Generator) Generate(facilities []entity.Facility) ([]entity.InventoryRecord, Scenario, error) {
	if len(facilities) == 0 {
		return nil, Scenario{}, fmt.Errorf("sin instalaciones: %w", domain.ErrInvalidInput)
	}
	sc, err := g.Plan(facilities)
	if err != nil {
		return nil, Scenario{}, err
	}
	victims := make(map[string]bool)
	saviors := make(map[string]bool)
	for _, p := range sc.Pairs {
		victims[p.Victim.ID] = true
		saviors[p.Savior.ID] = true
	}

	var records []entity.InventoryRecord
	for _, f := range facilities {
		forced := victims[f.ID] || saviors[f.ID]
		for _, item := range g.pickItems(forced) {
			var override *[3]int
			if item.Name == g.cfg.ScenarioItem {
				switch {
				case victims[f.ID]:
					override = &victimStock
				case saviors[f.ID]:
					override = &saviorStock
				}
			}
			records = append(records, g.history(f, item, override)...)
		}
	}
	return records, sc, nil
}

// pickItems muestra aleatoria del catálogo (en orden de catálogo); forced agrega el
// insumo del escenario si no salió.
func (g *Generator) pickItems(forced bool) []CatalogItem {
	n := min(g.between(g.cfg.ItemsPerSite), len(g.catalog))
	picked := g.rng.Perm(len(g.catalog))[:n]
	sort.Ints(picked)

	out := make([]CatalogItem, 0, n+1)
	has := false
	for _, i := range picked {
		out = append(out, g.catalog[i])
		if g.catalog[i].Name == g.cfg.ScenarioItem {
			has = true
		}
	}
	if forced && !has {
		for _, c := range g.catalog {
			if c.Name == g.cfg.ScenarioItem {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// history genera Days cortes consecutivos; la apertura de cada día es el cierre del
// anterior. override fija las cantidades del último día.
func (g *Generator) history(f entity.Facility, item CatalogItem, override *[3]int) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, 0, g.cfg.Days)
	leadTime := g.between(g.cfg.LeadTime)
	opening := g.between(g.cfg.Opening)
	for d := g.cfg.Days - 1; d >= 0; d-- {
		received, issued := g.between(g.cfg.Received), g.between(g.cfg.Issued)
		if d == 0 && override != nil {
			opening, received, issued = override[0], override[1], override[2]
		}
		closing := inventory.ClosingStock(opening, received, issued)
		out = append(out, entity.InventoryRecord{
			RecordID:     g.newID(),
			Date:         g.cfg.Date.AddDate(0, 0, -d),
			FacilityID:   f.ID,
			ItemName:     item.Name,
			Category:     item.Category,
			OpeningStock: opening,
			ReceivedQty:  received,
			IssuedQty:    issued,
			ClosingStock: closing,
			LeadTimeDays: leadTime,
			Criticality:  item.Criticality,
		})
		opening = closing
	}
	return out
}
