package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"photoimport/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled || cfg.History.Path == "" {
				return fmt.Errorf("run history is disabled in the configuration")
			}
			if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded yet.")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history database: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.SourceDir,
					run.Destination,
					run.Photographer,
					strconv.Itoa(run.Imported),
					strconv.Itoa(run.Warnings),
					yesNo(run.IndexUpdated),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Started", "Source", "Destination", "Photographer", "Imported", "Warnings", "Index"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}
