package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shaiso/ritm-launch/internal/config"
	"github.com/shaiso/ritm-launch/internal/domain"
	"github.com/shaiso/ritm-launch/internal/orchestrator"
	"github.com/shaiso/ritm-launch/internal/steps"
	"github.com/shaiso/ritm-launch/internal/telemetry"
)

// NewRunCmd создаёт команду полного прогона pipeline.
func NewRunCmd(envFn func() *Env) *cobra.Command {
	var flags controllerFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Probe connectivity, evaluate the business rule and launch the job template",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFn()

			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			fixture, err := config.LoadFixture(env.FixturePath)
			if err != nil {
				return err
			}

			report, err := RunPipeline(cmd.Context(), cfg, fixture, env.Logger)
			if report != nil {
				env.Output.Report(report)
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// RunPipeline собирает pipeline из конфигурации и выполняет его для fixture.
//
// Неполная конфигурация контроллера — фатальное предусловие
// (config.ErrMissingControllerConfig), pipeline в этом случае не запускается.
func RunPipeline(ctx context.Context, cfg *config.Config, fixture *config.Fixture, logger *slog.Logger) (*domain.Report, error) {
	if err := cfg.Controller.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	metrics := telemetry.NewMetrics()
	journal := &telemetry.RecordingSink{}
	pipeline := orchestrator.New(orchestrator.Config{
		Probe:    steps.NewProbe(cfg.Probe, logger),
		Launcher: steps.NewLauncher(cfg.Controller, logger),
		Sink:     telemetry.Tee(telemetry.NewSlogSink(logger), journal),
		Metrics:  metrics,
		Logger:   logger,
	})

	report, runErr := pipeline.Run(ctx, fixture.Record, fixture.Variables)
	for _, m := range journal.Messages() {
		report.Journal = append(report.Journal, domain.JournalEntry{Level: m.Level, Text: m.Text})
	}

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL, fixture.Record.Number); err != nil {
			logger.Warn("failed to push metrics", "error", err)
		}
	}

	if runErr != nil {
		return report, fmt.Errorf("%s: %w", report.Outcome, runErr)
	}
	return report, nil
}
