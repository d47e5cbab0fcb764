package csvio_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/csvio"
)

func TestReadFacilities(t *testing.T) {
	input := "\xEF\xBB\xBFFACILITY_ID,FACILITY_NAME,LATITUDE,LONGITUDE\n" +
		"F-001,RS Bandung,-6.9,107.6\n" +
		"F-002, Puskesmas Cimahi ,-6.88,107.54\n"

	list, err := csvio.ReadFacilities(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.Facility{ID: "F-001", Name: "RS Bandung", Latitude: -6.9, Longitude: 107.6}, list[0])
	assert.Equal(t, "Puskesmas Cimahi", list[1].Name)
}

func TestReadFacilities_Errores(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"vacío", ""},
		{"falta columna", "FACILITY_ID,FACILITY_NAME,LATITUDE\nF-1,A,1\n"},
		{"latitud inválida", "FACILITY_ID,FACILITY_NAME,LATITUDE,LONGITUDE\nF-1,A,norte,1\n"},
		{"id repetido", "FACILITY_ID,FACILITY_NAME,LATITUDE,LONGITUDE\nF-1,A,1,1\nF-1,B,2,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvio.ReadFacilities(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestInventory_IdaYVuelta(t *testing.T) {
	records := []entity.InventoryRecord{
		{
			RecordID: "a1", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			FacilityID: "F-001", ItemName: "Oxytocin Injection", Category: "Maternal",
			OpeningStock: 10, ReceivedQty: 0, IssuedQty: 10, ClosingStock: 0,
			LeadTimeDays: 3, Criticality: entity.CriticalityHigh,
		},
		{
			RecordID: "a2", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			FacilityID: "F-002", ItemName: "Normal Saline 0.9%", Category: "Fluids",
			OpeningStock: 200, ReceivedQty: 12, IssuedQty: 20, ClosingStock: 192,
			LeadTimeDays: 5, Criticality: entity.CriticalityMedium,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteInventory(&buf, records))
	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(csvio.InventoryHeader, ",")+"\n"))

	got, err := csvio.ReadInventory(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadInventory_RechazaCierreInconsistente(t *testing.T) {
	input := strings.Join(csvio.InventoryHeader, ",") + "\n" +
		"a1,2025-03-01,F-001,Folic Acid,Maternal,10,0,5,9,3,Low\n"
	_, err := csvio.ReadInventory(strings.NewReader(input))
	assert.ErrorIs(t, err, domain.ErrInvariantViolated)
}

func TestReadInventory_RechazaCriticidadDesconocida(t *testing.T) {
	input := strings.Join(csvio.InventoryHeader, ",") + "\n" +
		"a1,2025-03-01,F-001,Folic Acid,Maternal,10,0,5,5,3,Extreme\n"
	_, err := csvio.ReadInventory(strings.NewReader(input))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, csvio.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "ok\n")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))

	// un fallo deja intacto el archivo previo y no deja temporales
	boom := errors.New("boom")
	err = csvio.WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "parcial")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
