package lateral_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swiftstock-api/internal/application/lateral"
	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository/repotest"
)

const oxytocin = "Oxytocin Injection"

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newMatcher(store *repotest.Store) *lateral.Matcher {
	return lateral.NewMatcher(store, store, lateral.DefaultConfig())
}

func ptr[T any](v T) *T { return &v }

// Víctima en (0,0) sin stock, A a 0.01° con 150, B a 0.1° con 50; umbral 100 → solo A.
func TestFindLateralSupply_TresInstalaciones(t *testing.T) {
	store := &repotest.Store{
		Facilities: []entity.Facility{
			{ID: "V", Name: "Victim", Latitude: 0, Longitude: 0},
			{ID: "A", Name: "Candidate A", Latitude: 0, Longitude: 0.01},
			{ID: "B", Name: "Candidate B", Latitude: 0, Longitude: 0.1},
		},
		Records: []entity.InventoryRecord{
			repotest.Record(today, "V", oxytocin, entity.CriticalityHigh, 10, 0, 10),
			repotest.Record(today, "A", oxytocin, entity.CriticalityHigh, 155, 0, 5),
			repotest.Record(today, "B", oxytocin, entity.CriticalityHigh, 55, 0, 5),
		},
	}

	matches, err := newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "V",
		ItemName:         oxytocin,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "A", matches[0].Candidate.ID)
	assert.Equal(t, "V", matches[0].Source.ID)
	assert.Equal(t, 150, matches[0].AvailableStock)
	assert.InDelta(t, 1.1, matches[0].DistanceKm, 1e-9)
}

func TestFindLateralSupply_LimiteYOrden(t *testing.T) {
	store := &repotest.Store{
		Facilities: []entity.Facility{
			{ID: "F0", Name: "Source", Latitude: 0, Longitude: 0},
			{ID: "F1", Name: "Far", Latitude: 0, Longitude: 0.5},
			{ID: "F2", Name: "Near", Latitude: 0, Longitude: 0.05},
			{ID: "F3", Name: "Mid", Latitude: 0, Longitude: 0.2},
			{ID: "F4", Name: "Farthest", Latitude: 0, Longitude: 1.0},
		},
	}
	for _, f := range store.Facilities {
		store.Records = append(store.Records, repotest.Record(today, f.ID, oxytocin, entity.CriticalityHigh, 500, 0, 10))
	}

	matches, err := newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "F0",
		ItemName:         oxytocin,
		Limit:            2,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "F2", matches[0].Candidate.ID)
	assert.Equal(t, "F3", matches[1].Candidate.ID)
	for _, m := range matches {
		assert.NotEqual(t, "F0", m.Candidate.ID, "nunca se recomienda el origen")
	}

	// límite por defecto: 3
	matches, err = newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "F0",
		ItemName:         oxytocin,
	})
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestFindLateralSupply_DistanciaMaxima(t *testing.T) {
	store := &repotest.Store{
		Facilities: []entity.Facility{
			{ID: "S", Latitude: 0, Longitude: 0},
			{ID: "N", Latitude: 0, Longitude: 0.05}, // ~5.6 km
			{ID: "L", Latitude: 0, Longitude: 0.2},  // ~22 km
		},
		Records: []entity.InventoryRecord{
			repotest.Record(today, "N", oxytocin, entity.CriticalityHigh, 300, 0, 0),
			repotest.Record(today, "L", oxytocin, entity.CriticalityHigh, 300, 0, 0),
		},
	}

	matches, err := newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "S",
		ItemName:         oxytocin,
		MaxDistanceKm:    ptr(10.0),
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "N", matches[0].Candidate.ID)
}

// Config con umbral 100 y corte a 10 km: N (~5.6 km) tiene 50, L (~22 km) tiene 300.
func TestFindLateralSupply_CeroExplicitoAnulaConfig(t *testing.T) {
	store := &repotest.Store{
		Facilities: []entity.Facility{
			{ID: "S", Latitude: 0, Longitude: 0},
			{ID: "N", Latitude: 0, Longitude: 0.05},
			{ID: "L", Latitude: 0, Longitude: 0.2},
		},
		Records: []entity.InventoryRecord{
			repotest.Record(today, "N", oxytocin, entity.CriticalityHigh, 50, 0, 0),
			repotest.Record(today, "L", oxytocin, entity.CriticalityHigh, 300, 0, 0),
		},
	}
	m := lateral.NewMatcher(store, store, lateral.Config{MinStock: 100, MaxDistanceKm: 10, Limit: 3})

	// sin overrides: N bajo el umbral, L fuera del radio
	matches, err := m.FindLateralSupply(context.Background(), lateral.Query{SourceFacilityID: "S", ItemName: oxytocin})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = m.FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "S",
		ItemName:         oxytocin,
		MinStock:         ptr(0),
		MaxDistanceKm:    ptr(0.0),
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "N", matches[0].Candidate.ID)
	assert.Equal(t, 50, matches[0].AvailableStock)
	assert.Equal(t, "L", matches[1].Candidate.ID)

	// solo el umbral en cero: el corte de 10 km sigue vigente
	matches, err = m.FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "S",
		ItemName:         oxytocin,
		MinStock:         ptr(0),
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "N", matches[0].Candidate.ID)

	_, err = m.FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "S",
		ItemName:         oxytocin,
		MinStock:         ptr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFindLateralSupply_SinCandidatosNoEsError(t *testing.T) {
	store := &repotest.Store{
		Facilities: []entity.Facility{{ID: "S"}, {ID: "T", Latitude: 1}},
		Records: []entity.InventoryRecord{
			repotest.Record(today, "T", oxytocin, entity.CriticalityHigh, 100, 0, 0), // igual al umbral
		},
	}
	matches, err := newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{
		SourceFacilityID: "S",
		ItemName:         oxytocin,
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindLateralSupply_Errores(t *testing.T) {
	store := &repotest.Store{Facilities: []entity.Facility{{ID: "S"}}}

	_, err := newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{SourceFacilityID: "X", ItemName: oxytocin})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{SourceFacilityID: "S"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	store.Err = errors.New("connection refused")
	_, err = newMatcher(store).FindLateralSupply(context.Background(), lateral.Query{SourceFacilityID: "S", ItemName: oxytocin})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
