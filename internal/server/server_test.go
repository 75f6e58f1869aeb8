package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/matteo-piccolini/qrand/internal/backend"
	"github.com/matteo-piccolini/qrand/internal/modules/history"
	"github.com/matteo-piccolini/qrand/internal/modules/randomness"
	"github.com/matteo-piccolini/qrand/internal/qrng"
)

func setupTestServer(t *testing.T, exec qrng.Executor) *Server {
	t.Helper()
	log := zerolog.New(nil).Level(zerolog.Disabled)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, history.InitSchema(db))

	repo := history.NewRepository(db)
	service := randomness.NewService(exec, repo, log)

	return New(Config{
		Log:                log,
		Port:               0,
		RandomnessHandlers: randomness.NewHandler(service, log),
		HistoryHandlers:    history.NewHandler(repo, log),
	})
}

func TestServer_Health(t *testing.T) {
	srv := setupTestServer(t, backend.NewScripted())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_DrawThenHistoryRoundTrip(t *testing.T) {
	exec := backend.NewScripted().Queue(qrng.Counts{"00": 40, "01": 20, "10": 20, "11": 20})
	srv := setupTestServer(t, exec)

	req := httptest.NewRequest(http.MethodGet, "/api/random?outcomes=4&shots=100", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var drawResp struct {
		Data struct {
			DrawID       string `json:"draw_id"`
			RandomNumber int    `json:"random_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &drawResp))
	assert.Equal(t, 0, drawResp.Data.RandomNumber)

	req = httptest.NewRequest(http.MethodGet, "/api/history/"+drawResp.Data.DrawID, nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var draw history.Draw
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draw))
	assert.Equal(t, drawResp.Data.DrawID, draw.ID)
	assert.Equal(t, 0, draw.RandomNumber)
	assert.Equal(t, 4, draw.NumOutcomes)
}

func TestServer_HistoryList(t *testing.T) {
	srv := setupTestServer(t, backend.NewScripted())

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"draws":[]}`, rec.Body.String())
}
