package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/swiftstock-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// testDatabaseEnv base de pruebas desechable; las tablas se vacían en cada test.
const testDatabaseEnv = "SWIFTSTOCK_TEST_DATABASE_URL"

var (
	day1 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
)

func record(id string, date time.Time, facility, item string, opening, received, issued int) entity.InventoryRecord {
	closing := opening + received - issued
	if closing < 0 {
		closing = 0
	}
	return entity.InventoryRecord{
		RecordID:     id,
		Date:         date,
		FacilityID:   facility,
		ItemName:     item,
		Category:     "Maternal",
		OpeningStock: opening,
		ReceivedQty:  received,
		IssuedQty:    issued,
		ClosingStock: closing,
		LeadTimeDays: 3,
		Criticality:  entity.CriticalityHigh,
	}
}

// testPool abre la base de DATABASE_URL de pruebas o salta el test.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		t.Skipf("%s no definido: se omiten pruebas contra Postgres", testDatabaseEnv)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	loader := postgres.NewLoader(pool, postgres.NewTxRunner(pool))
	require.NoError(t, loader.EnsureSchema(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE inventory_daily, facilities`)
	require.NoError(t, err)
	return pool
}

func seeded(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool := testPool(t)
	ctx := context.Background()
	loader := postgres.NewLoader(pool, postgres.NewTxRunner(pool))

	n, err := loader.UpsertFacilities(ctx, []entity.Facility{
		{ID: "F-001", Name: "RS Bandung", Latitude: -6.90, Longitude: 107.60},
		{ID: "F-002", Name: "Puskesmas Cimahi", Latitude: -6.88, Longitude: 107.54},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = loader.ImportRecords(ctx, []entity.InventoryRecord{
		record("r1", day1, "F-001", "Oxytocin Injection", 30, 0, 10),
		record("r2", day2, "F-001", "Oxytocin Injection", 20, 0, 20),
		record("r3", day2, "F-002", "Oxytocin Injection", 600, 0, 5),
		record("r4", day2, "F-002", "Folic Acid", 80, 0, 10),
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return pool
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación previa a COPY (sin base de datos)
// ──────────────────────────────────────────────────────────────────────────────

func TestLoader_ImportRecordsRechazaLoteDuplicadoAntesDeCopiar(t *testing.T) {
	loader := postgres.NewLoader(nil, nil)

	_, err := loader.ImportRecords(context.Background(), []entity.InventoryRecord{
		record("a", day1, "F-001", "Folic Acid", 10, 0, 5),
		record("b", day1, "F-001", "Folic Acid", 12, 0, 5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLoader_ImportRecordsRechazaCierreInconsistente(t *testing.T) {
	bad := record("bad", day1, "F-001", "Folic Acid", 10, 0, 5)
	bad.ClosingStock = 99

	_, err := postgres.NewLoader(nil, nil).ImportRecords(context.Background(), []entity.InventoryRecord{bad})
	assert.ErrorIs(t, err, domain.ErrInvariantViolated)
}

func TestLoader_LoteVacioNoTocaLaBase(t *testing.T) {
	n, err := postgres.NewLoader(nil, nil).ImportRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios (requiere Postgres)
// ──────────────────────────────────────────────────────────────────────────────

func TestFacilityRepo_ListarYObtener(t *testing.T) {
	pool := seeded(t)
	repo := postgres.NewFacilityRepository(pool)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "F-001", list[0].ID)

	f, err := repo.GetByID(ctx, "F-002")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Puskesmas Cimahi", f.Name)

	f, err = repo.GetByID(ctx, "F-404")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestInventoryRepo_CorteMasRecienteYConsumo(t *testing.T) {
	pool := seeded(t)
	repo := postgres.NewInventoryRepository(pool)
	ctx := context.Background()

	rows, err := repo.LatestSnapshot(ctx, repository.SnapshotFilter{ItemName: "Oxytocin Injection"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "F-001", rows[0].Facility.ID)
	assert.Equal(t, 0, rows[0].ClosingStock)
	assert.True(t, decimal.NewFromInt(15).Equal(rows[0].AvgDailyUsage), "promedio de 10 y 20")
	assert.True(t, rows[0].Date.Equal(day2))

	stock, err := repo.ItemStock(ctx, "Oxytocin Injection", 100)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, "F-002", stock[0].Facility.ID)
	assert.Equal(t, 595, stock[0].ClosingStock)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Folic Acid", "Oxytocin Injection"}, items)
}

func TestLoader_ImportRecordsSobrescribeMismoDia(t *testing.T) {
	pool := seeded(t)
	ctx := context.Background()
	loader := postgres.NewLoader(pool, postgres.NewTxRunner(pool))

	_, err := loader.ImportRecords(ctx, []entity.InventoryRecord{
		record("r4b", day2, "F-002", "Folic Acid", 80, 20, 10),
	})
	require.NoError(t, err)

	rows, err := postgres.NewInventoryRepository(pool).LatestSnapshot(ctx, repository.SnapshotFilter{ItemName: "Folic Acid"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 90, rows[0].ClosingStock)
}

func TestLoader_ImportRecordsInstalacionDesconocida(t *testing.T) {
	pool := seeded(t)
	loader := postgres.NewLoader(pool, postgres.NewTxRunner(pool))

	_, err := loader.ImportRecords(context.Background(), []entity.InventoryRecord{
		record("x1", day2, "F-404", "Folic Acid", 10, 0, 5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
