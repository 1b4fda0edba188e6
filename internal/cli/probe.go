package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/ritm-launch/internal/steps"
)

// NewProbeCmd создаёт команду, выполняющую только connectivity probe.
func NewProbeCmd(envFn func() *Env) *cobra.Command {
	var flags controllerFlags

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check that outbound HTTPS works against the probe endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFn()

			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			probe := steps.NewProbe(cfg.Probe, env.Logger)
			if err := probe.Check(cmd.Context()); err != nil {
				return fmt.Errorf("probe %s: %w", probe.URL(), err)
			}

			env.Output.Success(fmt.Sprintf("Probe OK: %s", probe.URL()))
			return nil
		},
	}

	flags.registerProbe(cmd)
	return cmd
}
