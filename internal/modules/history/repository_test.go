package history

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// in-memory databases are per-connection
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return NewRepository(db)
}

func TestRepository_InsertAndGetDraw(t *testing.T) {
	repo := setupTestRepo(t)

	draw := Draw{
		ID:               uuid.New().String(),
		CreatedAt:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Backend:          "simulator",
		NumOutcomes:      5,
		Shots:            100,
		NumQubits:        3,
		RandomNumber:     2,
		NormalizedSpread: 0.2,
		TieBroken:        true,
		RawCounts:        map[string]int{"000": 30, "010": 30, "011": 40},
	}
	require.NoError(t, repo.InsertDraw(draw))

	got, err := repo.GetDraw(draw.ID)
	require.NoError(t, err)

	assert.Equal(t, draw.ID, got.ID)
	assert.Equal(t, "simulator", got.Backend)
	assert.Equal(t, 5, got.NumOutcomes)
	assert.Equal(t, 100, got.Shots)
	assert.Equal(t, 3, got.NumQubits)
	assert.Equal(t, 2, got.RandomNumber)
	assert.Equal(t, 0.2, got.NormalizedSpread)
	assert.True(t, got.TieBroken)
	assert.Equal(t, draw.RawCounts, got.RawCounts)
	assert.True(t, draw.CreatedAt.Equal(got.CreatedAt))
}

func TestRepository_GetDraw_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetDraw("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRepository_ListDraws_NewestFirst(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.InsertDraw(Draw{
			ID:           uuid.New().String(),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			Backend:      "simulator",
			NumOutcomes:  4,
			Shots:        10,
			NumQubits:    2,
			RandomNumber: i,
		}))
	}

	draws, err := repo.ListDraws(10)
	require.NoError(t, err)
	require.Len(t, draws, 3)

	assert.Equal(t, 2, draws[0].RandomNumber)
	assert.Equal(t, 0, draws[2].RandomNumber)
	// raw counts are not loaded in list view
	assert.Nil(t, draws[0].RawCounts)
}

func TestRepository_ListDraws_Limit(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.InsertDraw(Draw{
			ID:        uuid.New().String(),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Backend:   "simulator",
		}))
	}

	draws, err := repo.ListDraws(2)
	require.NoError(t, err)
	assert.Len(t, draws, 2)
}

func TestRepository_CalibrationRuns(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.InsertCalibrationRun(CalibrationRun{
			CreatedAt:        base.Add(time.Duration(i) * time.Hour),
			Backend:          "simulator",
			NumOutcomes:      8,
			Shots:            1024,
			NormalizedSpread: float64(i) * 0.1,
		}))
	}

	runs, err := repo.RecentCalibrationRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, 0.1, runs[0].NormalizedSpread)
	assert.Equal(t, 8, runs[0].NumOutcomes)
	assert.Equal(t, 1024, runs[0].Shots)
	assert.NotZero(t, runs[0].ID)
}
