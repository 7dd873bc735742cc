package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Kryndex/robottelo/internal/config"
	"github.com/Kryndex/robottelo/internal/store"
	"github.com/Kryndex/robottelo/internal/store/migrations"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

// NewSessionsCommand builds the journal inspection command: without
// arguments it tables all recorded sessions, with --session it replays
// that session's invocations.
func NewSessionsCommand(cfg *config.Configuration) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect recorded journal sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindEnv(cmd)

			db, err := store.NewDB(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer db.Close()
			if err := migrations.Run(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrating journal: %w", err)
			}
			st := store.NewStore(db)

			if sessionID != "" {
				id, err := uuid.Parse(sessionID)
				if err != nil {
					return fmt.Errorf("invalid session id %q: %w", sessionID, err)
				}
				return printInvocations(cmd, st, id)
			}
			return printSessions(cmd, st)
		},
	}
	cmd.Flags().StringVar(&cfg.Journal.Path, "journal-path", cfg.Journal.Path, "journal database path")
	cmd.Flags().StringVar(&sessionID, "session", "", "show invocations of one session")
	return cmd
}

func printSessions(cmd *cobra.Command, st *store.Store) error {
	sessions, err := st.Sessions().List(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		failures, err := st.Invocations().Failures(cmd.Context(), s.ID)
		if err != nil {
			return err
		}
		finished := "running"
		if s.FinishedAt != nil {
			finished = s.FinishedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			s.ID.String(),
			s.Target,
			s.StartedAt.Format("2006-01-02 15:04:05"),
			finished,
			strconv.Itoa(failures),
		})
	}

	for _, line := range hammer.EncodeTable([]string{"Id", "Target", "Started", "Finished", "Failures"}, rows) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func printInvocations(cmd *cobra.Command, st *store.Store, id uuid.UUID) error {
	if _, err := st.Sessions().Get(cmd.Context(), id); err != nil {
		return err
	}
	invocations, err := st.Invocations().BySession(cmd.Context(), id)
	if err != nil {
		return err
	}

	okc := color.New(color.FgGreen).SprintFunc()
	failc := color.New(color.FgRed).SprintFunc()
	for _, inv := range invocations {
		status := okc("ok")
		if inv.ExitStatus != 0 {
			status = failc(fmt.Sprintf("exit %d", inv.ExitStatus))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s\n", inv.CreatedAt.Format("15:04:05"), status, inv.Command)
		if inv.Stderr != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "          %s\n", inv.Stderr)
		}
	}
	return nil
}
