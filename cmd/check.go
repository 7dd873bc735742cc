package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Kryndex/robottelo/internal/config"
	"github.com/Kryndex/robottelo/internal/entities"
	"github.com/Kryndex/robottelo/internal/remote"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

// NewCheckCommand builds the connectivity check: dial the target, run one
// cheap listing and report whether the CLI answers with valid output.
func NewCheckCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the target is reachable and the CLI responds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindEnv(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			exec, err := remote.NewSSHExecutor(cfg.Server)
			if err != nil {
				return fmt.Errorf("connecting to %s: %w", cfg.Address(), err)
			}
			defer exec.Close()

			client := hammer.NewClient(exec,
				hammer.WithBinary(cfg.Hammer.Binary),
				hammer.WithCredentials(cfg.Hammer.Username, cfg.Hammer.Password),
			)

			orgs, err := entities.Organization(client).List(cmd.Context(), nil)
			if err != nil {
				color.Red("check failed: %v", err)
				return err
			}
			color.Green("ok: %s answers, %d organizations", cfg.Address(), len(orgs))
			return nil
		},
	}
	serverFlags(cmd, cfg)
	return cmd
}
