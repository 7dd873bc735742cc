package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/internal/config"
	"github.com/Kryndex/robottelo/internal/remote"
	"github.com/Kryndex/robottelo/internal/runner"
	"github.com/Kryndex/robottelo/internal/store"
	"github.com/Kryndex/robottelo/internal/store/migrations"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

// NewRunCommand builds the smoke run command. It connects to the target
// over SSH, walks the organization scenario and prints per-step results.
// When the journal is enabled every CLI invocation is also recorded under
// a fresh session.
func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the acceptance smoke scenario against a live target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindEnv(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSmoke(cmd.Context(), cfg)
		},
	}
	serverFlags(cmd, cfg)
	cmd.Flags().BoolVar(&cfg.Journal.Enabled, "journal-enabled", cfg.Journal.Enabled, "record invocations in the journal")
	cmd.Flags().StringVar(&cfg.Journal.Path, "journal-path", cfg.Journal.Path, "journal database path")
	cmd.Flags().IntVar(&cfg.Workers, "num-workers", cfg.Workers, "cleanup pool size")
	return cmd
}

func runSmoke(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("run")

	sshExec, err := remote.NewSSHExecutor(cfg.Server)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.Address(), err)
	}
	defer sshExec.Close()

	var exec hammer.Executor = sshExec
	if cfg.Journal.Enabled {
		db, err := store.NewDB(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer db.Close()
		if err := migrations.Run(ctx, db); err != nil {
			return fmt.Errorf("migrating journal: %w", err)
		}

		st := store.NewStore(db)
		session, err := st.Sessions().Start(ctx, cfg.Address())
		if err != nil {
			return fmt.Errorf("starting journal session: %w", err)
		}
		defer func() {
			if err := st.Sessions().Finish(context.WithoutCancel(ctx), session.ID); err != nil {
				log.Warnw("finishing journal session", "error", err)
			}
		}()
		log.Infow("journal session started", "session", session.ID)
		exec = store.NewRecordingExecutor(sshExec, st, session.ID)
	}

	client := hammer.NewClient(exec,
		hammer.WithBinary(cfg.Hammer.Binary),
		hammer.WithCredentials(cfg.Hammer.Username, cfg.Hammer.Password),
	)

	r := runner.New(client, cfg.Workers)
	report := r.Smoke(ctx)
	if err := r.Close(ctx); err != nil {
		log.Warnw("cleanup incomplete", "error", err)
	}

	printReport(report)
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(report.Steps))
	}
	return nil
}

func printReport(report *runner.Report) {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	for _, step := range report.Steps {
		if step.Err != nil {
			fmt.Printf("%s %s (%s): %v\n", fail("FAIL"), step.Name, step.Duration.Round(time.Millisecond), step.Err)
		} else {
			fmt.Printf("%s %s (%s)\n", pass("PASS"), step.Name, step.Duration.Round(time.Millisecond))
		}
	}
	fmt.Printf("%d passed, %d failed\n", report.Passed(), report.Failed())
}
