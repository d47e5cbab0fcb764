// Package csvio lectura y escritura de los CSV de instalaciones e inventario diario.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
)

// Encabezados de los archivos.
var (
	FacilityHeader  = []string{"FACILITY_ID", "FACILITY_NAME", "LATITUDE", "LONGITUDE"}
	InventoryHeader = []string{
		"RECORD_ID", "DATE", "FACILITY_ID", "ITEM_NAME", "CATEGORY",
		"OPENING_STOCK", "RECEIVED_QTY", "ISSUED_QTY", "CLOSING_STOCK",
		"LEAD_TIME_DAYS", "CRITICALITY_LEVEL",
	}
)

// newReader lector CSV que descarta el BOM UTF-8/UTF-16 si existe (exportes de Excel).
func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())))
	reader.TrimLeadingSpace = true
	return reader
}

// columnIndex mapea cada columna requerida a su posición en el encabezado.
func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %s: %w", col, domain.ErrInvalidInput)
		}
	}
	return idx, nil
}

// ReadFacilities lee el CSV de instalaciones. IDs duplicados o coordenadas
// inválidas devuelven domain.ErrInvalidInput con el número de línea.
func ReadFacilities(r io.Reader) ([]entity.Facility, error) {
	reader := newReader(r)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archivo de instalaciones vacío: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx, err := columnIndex(header, FacilityHeader)
	if err != nil {
		return nil, err
	}

	var out []entity.Facility
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		f := entity.Facility{
			ID:   strings.TrimSpace(rec[idx["FACILITY_ID"]]),
			Name: strings.TrimSpace(rec[idx["FACILITY_NAME"]]),
		}
		if f.ID == "" {
			return nil, fmt.Errorf("línea %d: FACILITY_ID vacío: %w", line, domain.ErrInvalidInput)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("línea %d: FACILITY_ID %s repetido: %w", line, f.ID, domain.ErrInvalidInput)
		}
		seen[f.ID] = true
		if f.Latitude, err = parseFloat(rec[idx["LATITUDE"]]); err != nil {
			return nil, fmt.Errorf("línea %d: LATITUDE: %w", line, err)
		}
		if f.Longitude, err = parseFloat(rec[idx["LONGITUDE"]]); err != nil {
			return nil, fmt.Errorf("línea %d: LONGITUDE: %w", line, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// ReadFacilitiesFile abre path y lee las instalaciones.
func ReadFacilitiesFile(path string) ([]entity.Facility, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return ReadFacilities(f)
}

// WriteInventory escribe encabezado y registros en el orden recibido.
func WriteInventory(w io.Writer, records []entity.InventoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(InventoryHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.RecordID,
			r.Date.Format(entity.DateLayout),
			r.FacilityID,
			r.ItemName,
			r.Category,
			strconv.Itoa(r.OpeningStock),
			strconv.Itoa(r.ReceivedQty),
			strconv.Itoa(r.IssuedQty),
			strconv.Itoa(r.ClosingStock),
			strconv.Itoa(r.LeadTimeDays),
			string(r.Criticality),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadInventory lee el CSV de inventario y verifica la regla de cierre en cada fila.
func ReadInventory(r io.Reader) ([]entity.InventoryRecord, error) {
	reader := newReader(r)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archivo de inventario vacío: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx, err := columnIndex(header, InventoryHeader)
	if err != nil {
		return nil, err
	}

	var out []entity.InventoryRecord
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(col string) string { return strings.TrimSpace(rec[idx[col]]) }

		date, err := time.Parse(entity.DateLayout, field("DATE"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: DATE: %w", line, domain.ErrInvalidInput)
		}
		crit, ok := entity.ParseCriticality(field("CRITICALITY_LEVEL"))
		if !ok {
			return nil, fmt.Errorf("línea %d: CRITICALITY_LEVEL %q: %w", line, field("CRITICALITY_LEVEL"), domain.ErrInvalidInput)
		}
		ints := make(map[string]int, 5)
		for _, col := range []string{"OPENING_STOCK", "RECEIVED_QTY", "ISSUED_QTY", "CLOSING_STOCK", "LEAD_TIME_DAYS"} {
			n, err := strconv.Atoi(field(col))
			if err != nil {
				return nil, fmt.Errorf("línea %d: %s: %w", line, col, domain.ErrInvalidInput)
			}
			ints[col] = n
		}

		record := entity.InventoryRecord{
			RecordID:     field("RECORD_ID"),
			Date:         date,
			FacilityID:   field("FACILITY_ID"),
			ItemName:     field("ITEM_NAME"),
			Category:     field("CATEGORY"),
			OpeningStock: ints["OPENING_STOCK"],
			ReceivedQty:  ints["RECEIVED_QTY"],
			IssuedQty:    ints["ISSUED_QTY"],
			ClosingStock: ints["CLOSING_STOCK"],
			LeadTimeDays: ints["LEAD_TIME_DAYS"],
			Criticality:  crit,
		}
		if record.RecordID == "" || record.FacilityID == "" || record.ItemName == "" {
			return nil, fmt.Errorf("línea %d: campos obligatorios vacíos: %w", line, domain.ErrInvalidInput)
		}
		if !inventory.ValidRecord(record) {
			return nil, fmt.Errorf("línea %d: %w", line, domain.ErrInvariantViolated)
		}
		out = append(out, record)
	}
	return out, nil
}

// ReadInventoryFile abre path y lee el inventario.
func ReadInventoryFile(path string) ([]entity.InventoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return ReadInventory(f)
}

// WriteFileAtomic escribe en un temporal del mismo directorio y lo renombra a path.
// Si write falla, path no se toca.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return v, nil
}
