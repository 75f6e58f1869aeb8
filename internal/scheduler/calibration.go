package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/matteo-piccolini/qrand/internal/config"
	"github.com/matteo-piccolini/qrand/internal/modules/history"
	"github.com/matteo-piccolini/qrand/internal/qrng"
)

// CalibrationRecorder persists calibration results. Satisfied by
// *history.Repository.
type CalibrationRecorder interface {
	InsertCalibrationRun(c history.CalibrationRun) error
}

// CalibrationJob periodically runs a fixed-size batch against the
// configured backend and records the observed spread, so drift in the
// backend's distribution shows up in the calibration history.
type CalibrationJob struct {
	exec     qrng.Executor
	recorder CalibrationRecorder
	outcomes int
	shots    int
	timeout  time.Duration
	log      zerolog.Logger
}

// NewCalibrationJob creates a new calibration job
func NewCalibrationJob(exec qrng.Executor, recorder CalibrationRecorder, cfg config.CalibrationConfig, log zerolog.Logger) *CalibrationJob {
	return &CalibrationJob{
		exec:     exec,
		recorder: recorder,
		outcomes: cfg.Outcomes,
		shots:    cfg.Shots,
		timeout:  5 * time.Minute,
		log:      log.With().Str("job", "calibration").Logger(),
	}
}

// Name implements Job
func (j *CalibrationJob) Name() string { return "calibration" }

// Run implements Job
func (j *CalibrationJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	spec, err := qrng.BuildCircuit(j.outcomes)
	if err != nil {
		return err
	}
	result, err := j.exec.Execute(ctx, spec, j.shots)
	if err != nil {
		return err
	}
	analysis, err := qrng.Analyze(result, j.outcomes)
	if err != nil {
		return err
	}

	run := history.CalibrationRun{
		CreatedAt:        time.Now().UTC(),
		Backend:          j.exec.Name(),
		NumOutcomes:      j.outcomes,
		Shots:            j.shots,
		NormalizedSpread: analysis.NormalizedSpread,
	}
	if err := j.recorder.InsertCalibrationRun(run); err != nil {
		return err
	}

	j.log.Info().
		Int("shots", j.shots).
		Float64("normalized_spread", analysis.NormalizedSpread).
		Msg("Calibration batch recorded")
	return nil
}
