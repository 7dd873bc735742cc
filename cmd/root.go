// Package cmd wires the command line surface: a smoke run against a live
// target, a connectivity check and journal inspection. Every flag can also
// be set through a ROBOTTELO_ environment variable.
package cmd

import (
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/internal/config"
)

const envPrefix = "ROBOTTELO"

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "robottelo",
		Short:         "Acceptance harness for the hammer CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cobrautil.IsBuiltinCommand(cmd) {
				return nil
			}
			return setupLogging(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(NewRunCommand(cfg))
	root.AddCommand(NewCheckCommand(cfg))
	root.AddCommand(NewSessionsCommand(cfg))
	return root
}

func Execute() error {
	return NewRootCommand(config.NewConfigurationWithDefaults()).Execute()
}

func setupLogging(debug bool) error {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// bindEnv applies ROBOTTELO_ environment variables to any flag the user
// did not set explicitly.
func bindEnv(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)
}

// serverFlags binds the SSH target flags shared by run and check.
func serverFlags(cmd *cobra.Command, cfg *config.Configuration) {
	cmd.Flags().StringVar(&cfg.Server.Host, "server-host", cfg.Server.Host, "SSH host the CLI runs on")
	cmd.Flags().IntVar(&cfg.Server.Port, "server-port", cfg.Server.Port, "SSH port")
	cmd.Flags().StringVar(&cfg.Server.User, "server-user", cfg.Server.User, "SSH user")
	cmd.Flags().StringVar(&cfg.Server.Password, "server-password", cfg.Server.Password, "SSH password")
	cmd.Flags().StringVar(&cfg.Server.KeyFile, "server-key-file", cfg.Server.KeyFile, "SSH private key file")
	cmd.Flags().DurationVar(&cfg.Server.Timeout, "server-timeout", cfg.Server.Timeout, "SSH dial timeout")
	cmd.Flags().StringVar(&cfg.Hammer.Binary, "hammer-binary", cfg.Hammer.Binary, "CLI binary name")
	cmd.Flags().StringVar(&cfg.Hammer.Username, "hammer-username", cfg.Hammer.Username, "product account name")
	cmd.Flags().StringVar(&cfg.Hammer.Password, "hammer-password", cfg.Hammer.Password, "product account password")
}
