// ritm-launch — локальная проверка business rule, запускающего AAP job
// template для RITM в состоянии "in process".
//
// Использование:
//
//	ritm-launch [--fixture FILE] [--json] <command> [flags]
//
// Команды:
//
//	run    Полный прогон: gate, probe, extra_vars, launch, интерпретация
//	probe  Только connectivity probe
//	vars   Вывести extra_vars для fixture
//
// Параметры контроллера: AAP_URL, AAP_TOKEN, AAP_JOB_TEMPLATE_ID,
// AAP_INSECURE_SKIP_VERIFY (или соответствующие флаги команды run).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/ritm-launch/internal/cli"
	"github.com/shaiso/ritm-launch/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var fixturePath string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "ritm-launch",
		Short:         "ritm-launch — verify the RITM → AAP job launch business rule locally",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "YAML/JSON file with record and catalog variables (default: built-in RITM0010022)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	// Логи — в stderr, отчёт — в stdout.
	logger := telemetry.SetupLogger()

	envFn := func() *cli.Env {
		return &cli.Env{
			Logger:      logger,
			Output:      cli.NewOutput(jsonOutput),
			FixturePath: fixturePath,
		}
	}

	rootCmd.AddCommand(
		cli.NewRunCmd(envFn),
		cli.NewProbeCmd(envFn),
		cli.NewVarsCmd(envFn),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.NewOutput(jsonOutput).Error(err.Error())
		cancel()
		os.Exit(1)
	}
}
