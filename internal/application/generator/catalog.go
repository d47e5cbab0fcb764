package generator

import "github.com/jhoicas/swiftstock-api/internal/domain/entity"

// CatalogItem insumo del catálogo maestro.
type CatalogItem struct {
	Name        string
	Category    string
	Criticality entity.Criticality
}

// ScenarioItem insumo usado en el escenario de crisis.
const ScenarioItem = "Oxytocin Injection"

// MasterCatalog catálogo maestro de 25 insumos.
func MasterCatalog() []CatalogItem {
	return []CatalogItem{
		{ScenarioItem, "Maternal", entity.CriticalityHigh},
		{"Magnesium Sulfate", "Maternal", entity.CriticalityHigh},
		{"Amoxicillin 500mg", "Antibiotic", entity.CriticalityMedium},
		{"Azithromycin", "Antibiotic", entity.CriticalityMedium},
		{"Insulin Glargine", "Chronic", entity.CriticalityHigh},
		{"Metformin 500mg", "Chronic", entity.CriticalityMedium},
		{"Amlodipine 5mg", "Chronic", entity.CriticalityMedium},
		{"Ringer Lactate", "Fluids", entity.CriticalityHigh},
		{"Normal Saline 0.9%", "Fluids", entity.CriticalityMedium},
		{"Epinephrine", "Emergency", entity.CriticalityHigh},
		{"BCG Vaccine", "Vaccine", entity.CriticalityHigh},
		{"Polio Vaccine", "Vaccine", entity.CriticalityHigh},
		{"Surgical Masks", "Consumable", entity.CriticalityLow},
		{"Sterile Gloves", "Consumable", entity.CriticalityLow},
		{"Disposable Syringes 3ml", "Consumable", entity.CriticalityLow},
		{"IV Cannula", "Consumable", entity.CriticalityMedium},
		{"HIV Rapid Test Kit", "Diagnostic", entity.CriticalityHigh},
		{"Malaria RDT", "Diagnostic", entity.CriticalityHigh},
		{"Blood Glucose Strips", "Diagnostic", entity.CriticalityMedium},
		{"Paracetamol 500mg", "General", entity.CriticalityLow},
		{"Ibuprofen 400mg", "General", entity.CriticalityLow},
		{"Oral Rehydration Salts", "General", entity.CriticalityMedium},
		{"TB-Kit Adult", "Infectious", entity.CriticalityHigh},
		{"Artemether (Malaria)", "Infectious", entity.CriticalityHigh},
		{"Folic Acid", "Maternal", entity.CriticalityLow},
	}
}
