package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swiftstock-api/internal/application/generator"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/csvio"
	"github.com/jhoicas/swiftstock-api/pkg/config"
	"github.com/jhoicas/swiftstock-api/pkg/logger"
)

const hospitals = "FACILITY_ID,FACILITY_NAME,LATITUDE,LONGITUDE\n" +
	"F-001,RS Bandung,-6.90,107.60\n" +
	"F-002,RS Garut,-7.20,107.90\n" +
	"F-003,RS Bogor,-6.59,106.79\n" +
	"F-004,PKM Cimahi,-6.88,107.54\n" +
	"F-005,PKM Tasik,-7.33,108.22\n"

func TestGenerateYLoad_SQLite(t *testing.T) {
	dir := t.TempDir()
	facPath := filepath.Join(dir, "hospitals.csv")
	invPath := filepath.Join(dir, "inventory_data.csv")
	require.NoError(t, os.WriteFile(facPath, []byte(hospitals), 0o644))

	log := logger.New(logger.Config{Level: "error", Out: os.Stderr})
	cfg := generator.DefaultConfig()
	cfg.Date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, runGenerate(facPath, invPath, 42, cfg, log))

	records, err := csvio.ReadInventoryFile(invPath)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(records), 5*20)

	appCfg := &config.Config{Store: config.StoreConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(dir, "swiftstock.db"),
	}}
	require.NoError(t, runLoad(context.Background(), appCfg, facPath, invPath, log))
	// recargar es idempotente
	require.NoError(t, runLoad(context.Background(), appCfg, facPath, invPath, log))
}

func TestGenerate_EntradaInexistente(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Out: os.Stderr})
	err := runGenerate(filepath.Join(t.TempDir(), "nope.csv"), "out.csv", 1, generator.DefaultConfig(), log)
	assert.Error(t, err)
}
