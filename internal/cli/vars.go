package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/ritm-launch/internal/config"
	"github.com/shaiso/ritm-launch/internal/domain"
)

// NewVarsCmd создаёт команду, печатающую extra_vars для fixture без сетевых вызовов.
func NewVarsCmd(envFn func() *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "Print the orchestration variables derived from the fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFn()

			fixture, err := config.LoadFixture(env.FixturePath)
			if err != nil {
				return err
			}

			env.Output.Variables(domain.DeriveVariables(fixture.Variables, fixture.Record))
			return nil
		},
	}
}
