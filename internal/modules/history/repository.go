package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Repository provides persistence for draws and calibration runs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertDraw records one completed draw.
func (r *Repository) InsertDraw(d Draw) error {
	var blob []byte
	if len(d.RawCounts) > 0 {
		var err error
		blob, err = msgpack.Marshal(d.RawCounts)
		if err != nil {
			return fmt.Errorf("failed to encode raw counts: %w", err)
		}
	}

	_, err := r.db.Exec(`
		INSERT INTO draws
			(id, created_at, backend, num_outcomes, shots, num_qubits, random_number, normalized_spread, tie_broken, raw_counts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.CreatedAt.UTC().Format(time.RFC3339Nano),
		d.Backend,
		d.NumOutcomes,
		d.Shots,
		d.NumQubits,
		d.RandomNumber,
		d.NormalizedSpread,
		boolToInt(d.TieBroken),
		blob,
	)
	if err != nil {
		return fmt.Errorf("failed to insert draw %s: %w", d.ID, err)
	}
	return nil
}

// GetDraw returns one draw by id, including its raw counts.
// Returns sql.ErrNoRows if the id is unknown.
func (r *Repository) GetDraw(id string) (Draw, error) {
	row := r.db.QueryRow(`
		SELECT id, created_at, backend, num_outcomes, shots, num_qubits, random_number, normalized_spread, tie_broken, raw_counts
		FROM draws WHERE id = ?`, id)
	return scanDraw(row)
}

// ListDraws returns the most recent draws, newest first, without raw
// counts (those can be large and are only needed per-draw).
func (r *Repository) ListDraws(limit int) ([]Draw, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, created_at, backend, num_outcomes, shots, num_qubits, random_number, normalized_spread, tie_broken
		FROM draws ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}
	defer rows.Close()

	var draws []Draw
	for rows.Next() {
		var d Draw
		var createdAt string
		var tieBroken int
		if err := rows.Scan(&d.ID, &createdAt, &d.Backend, &d.NumOutcomes, &d.Shots, &d.NumQubits,
			&d.RandomNumber, &d.NormalizedSpread, &tieBroken); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		d.TieBroken = tieBroken != 0
		draws = append(draws, d)
	}
	return draws, rows.Err()
}

// InsertCalibrationRun records one scheduled calibration batch.
func (r *Repository) InsertCalibrationRun(c CalibrationRun) error {
	_, err := r.db.Exec(`
		INSERT INTO calibration_runs (created_at, backend, num_outcomes, shots, normalized_spread)
		VALUES (?, ?, ?, ?, ?)`,
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
		c.Backend,
		c.NumOutcomes,
		c.Shots,
		c.NormalizedSpread,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calibration run: %w", err)
	}
	return nil
}

// RecentCalibrationRuns returns the most recent calibration runs, newest first.
func (r *Repository) RecentCalibrationRuns(limit int) ([]CalibrationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, created_at, backend, num_outcomes, shots, normalized_spread
		FROM calibration_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calibration runs: %w", err)
	}
	defer rows.Close()

	var runs []CalibrationRun
	for rows.Next() {
		var c CalibrationRun
		var createdAt string
		if err := rows.Scan(&c.ID, &createdAt, &c.Backend, &c.NumOutcomes, &c.Shots, &c.NormalizedSpread); err != nil {
			return nil, fmt.Errorf("failed to scan calibration run: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		runs = append(runs, c)
	}
	return runs, rows.Err()
}

func scanDraw(row *sql.Row) (Draw, error) {
	var d Draw
	var createdAt string
	var tieBroken int
	var blob []byte
	if err := row.Scan(&d.ID, &createdAt, &d.Backend, &d.NumOutcomes, &d.Shots, &d.NumQubits,
		&d.RandomNumber, &d.NormalizedSpread, &tieBroken, &blob); err != nil {
		return Draw{}, err
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	d.TieBroken = tieBroken != 0
	if len(blob) > 0 {
		if err := msgpack.Unmarshal(blob, &d.RawCounts); err != nil {
			return Draw{}, fmt.Errorf("failed to decode raw counts for draw %s: %w", d.ID, err)
		}
	}
	return d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
