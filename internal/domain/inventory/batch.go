package inventory

import (
	"fmt"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

type recordKey struct {
	facilityID string
	itemName   string
	date       string
}

// ValidBatch verifica un lote antes de cargarlo: cada registro cumple la regla de
// cierre y ningún (instalación, insumo, fecha) se repite dentro del lote.
func ValidBatch(records []entity.InventoryRecord) error {
	seen := make(map[recordKey]string, len(records))
	for _, r := range records {
		if !ValidRecord(r) {
			return fmt.Errorf("record %s (%s/%s): %w", r.RecordID, r.FacilityID, r.ItemName, domain.ErrInvariantViolated)
		}
		k := recordKey{r.FacilityID, r.ItemName, r.Date.Format(entity.DateLayout)}
		if prev, ok := seen[k]; ok {
			return fmt.Errorf("%w: records %s y %s repiten %s/%s/%s: %w",
				domain.ErrInvalidInput, prev, r.RecordID, k.facilityID, k.itemName, k.date, domain.ErrDuplicate)
		}
		seen[k] = r.RecordID
	}
	return nil
}
