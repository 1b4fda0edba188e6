package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/ritm-launch/internal/domain"
	"github.com/shaiso/ritm-launch/internal/steps"
	"github.com/shaiso/ritm-launch/internal/telemetry"
)

// Prober — connectivity probe (steps.Probe).
type Prober interface {
	Check(ctx context.Context) error
}

// JobLauncher — запуск job template (steps.Launcher).
type JobLauncher interface {
	Launch(ctx context.Context, vars domain.OrchestrationVariables) steps.LaunchResult
	JobURL(jobID string) string
}

// Pipeline выполняет один прогон business rule для записи RITM.
//
// Стадии строго последовательны, каждая запускается только после явного
// успеха предыдущей:
//
//	gate → probe → derive → launch → interpret
//
// Gate проверяется до любого сетевого вызова, поэтому запись не в
// состоянии "2" не порождает ни одного запроса. Одновременно выполняется
// не более одного HTTP-запроса, retry нет.
type Pipeline struct {
	probe    Prober
	launcher JobLauncher
	derive   DeriveFunc
	sink     telemetry.Sink
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// DeriveFunc вычисляет extra_vars для записи.
type DeriveFunc func(domain.CatalogVariables, domain.ChangeRequestRecord) domain.OrchestrationVariables

// Config — зависимости Pipeline.
type Config struct {
	Probe    Prober
	Launcher JobLauncher

	// Derive — default: domain.DeriveVariables.
	Derive DeriveFunc

	// Sink — приёмник info/error сообщений. Default: SlogSink поверх Logger.
	Sink telemetry.Sink

	// Metrics — опционально.
	Metrics *telemetry.Metrics

	Logger *slog.Logger
}

// New создаёт Pipeline.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sink := cfg.Sink
	if sink == nil {
		sink = telemetry.NewSlogSink(logger)
	}

	derive := cfg.Derive
	if derive == nil {
		derive = domain.DeriveVariables
	}

	return &Pipeline{
		probe:    cfg.Probe,
		launcher: cfg.Launcher,
		derive:   derive,
		sink:     sink,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}

// Run выполняет pipeline для записи и её catalog variables.
//
// Report возвращается всегда. Ошибка равна nil для launched и skipped,
// иначе оборачивает ErrTransportDiagnosis, ErrTransportFailure,
// ErrControllerRejection, ErrResponseMalformed или
// domain.ErrIncompleteVariables.
func (p *Pipeline) Run(ctx context.Context, record domain.ChangeRequestRecord, catalog domain.CatalogVariables) (*domain.Report, error) {
	runID := uuid.New()
	logger := telemetry.WithRecord(telemetry.WithRunID(p.logger, runID.String()), record.Number)

	report := &domain.Report{
		RunID:        runID,
		RecordNumber: record.Number,
	}

	ctx = telemetry.WithLogger(ctx, logger)
	err := p.run(ctx, logger, record, catalog, report)
	if err != nil {
		report.Error = err.Error()
	}

	if p.metrics != nil {
		p.metrics.ObserveRun(string(report.Outcome))
	}
	if report.Outcome.IsFailure() {
		logger.Warn("pipeline finished", "outcome", report.Outcome, "error", err)
	} else {
		logger.Debug("pipeline finished", "outcome", report.Outcome)
	}

	return report, err
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, record domain.ChangeRequestRecord, catalog domain.CatalogVariables, report *domain.Report) error {
	// 1. Gate: не "in process" — молча выходим.
	if err := CheckState(record); err != nil {
		logger.Debug("record not actionable, skipping", "state", record.RecordState())
		report.Outcome = domain.OutcomeSkipped
		return nil
	}

	// 2. Probe.
	if err := p.checkConnectivity(ctx); err != nil {
		report.Outcome = domain.OutcomeProbeFailed
		return err
	}

	p.sink.Info(fmt.Sprintf("Business Rule triggered for request: %s", record.RequestNumber()))

	// 3. Переменные.
	vars := p.derive(catalog, record)
	report.Variables = &vars
	if err := vars.Validate(); err != nil {
		report.Outcome = domain.OutcomeInvalidVariables
		p.sink.Error(fmt.Sprintf("Invalid job variables for request: %s. Error: %v", record.Number, err))
		return err
	}

	p.sink.Info(fmt.Sprintf("Launching AAP job for project: %s", vars.ProjectName))

	// 4. Launch.
	start := time.Now()
	res := p.launcher.Launch(ctx, vars)
	p.observeStage("launch", start)

	// 5. Интерпретация.
	in := Interpret(res)
	report.Outcome = in.Outcome
	report.Update = in.Update

	switch in.Outcome {
	case domain.OutcomeLaunched:
		report.JobID = in.JobID
		report.JobURL = p.launcher.JobURL(in.JobID)
		p.sink.Info(fmt.Sprintf("AAP Job launched successfully: %s for request: %s", in.JobID, record.Number))
	case domain.OutcomeMalformed:
		p.sink.Error(fmt.Sprintf("Failed to parse AAP response: %v", res.Err))
	case domain.OutcomeRejected:
		p.sink.Error(fmt.Sprintf("Failed to launch AAP job for request: %s. Status: %d, Response: %s", record.Number, res.StatusCode, res.Body))
	case domain.OutcomeTransportFailed:
		p.sink.Error(fmt.Sprintf("Exception launching AAP job for request: %s. Error: %v", record.Number, res.Err))
	}

	return in.Err
}

// checkConnectivity выполняет probe и переводит ошибку в ErrTransportDiagnosis.
func (p *Pipeline) checkConnectivity(ctx context.Context) error {
	start := time.Now()
	err := p.probe.Check(ctx)
	p.observeStage("probe", start)
	if err == nil {
		return nil
	}

	var statusErr *steps.StatusError
	if errors.As(err, &statusErr) {
		p.sink.Error(fmt.Sprintf("Free API test failed with status: %d", statusErr.StatusCode))
	} else {
		p.sink.Error(fmt.Sprintf("Free API test error: %v", err))
	}
	return fmt.Errorf("%w: %v", ErrTransportDiagnosis, err)
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	if p.metrics != nil {
		p.metrics.ObserveStage(stage, time.Since(start))
	}
}
