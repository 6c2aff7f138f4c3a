package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/guessr/internal/cli"
	"github.com/aretw0/guessr/pkg/adapters/sqlite"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the recorded games",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Results == "" {
			return errors.New("no results database configured (set results_db or GUESSR_RESULTS_DB)")
		}
		recent, _ := cmd.Flags().GetInt("recent")

		rec, err := sqlite.Open(cfg.Results)
		if err != nil {
			return err
		}
		defer rec.Close()

		ctx := cmd.Context()
		summary, err := rec.Summary(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		cli.PrintSystemMessage(out, "%d games, %.1f questions on average", summary.Games, summary.AvgQuestions)
		outcomes := make([]string, 0, len(summary.ByOutcome))
		for o := range summary.ByOutcome {
			outcomes = append(outcomes, string(o))
		}
		sort.Strings(outcomes)
		for _, o := range outcomes {
			fmt.Fprintf(out, "  %-18s %d\n", o, summary.ByOutcome[domain.Outcome(o)])
		}

		if recent <= 0 {
			return nil
		}
		results, err := rec.Recent(ctx, recent)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(out, "%s  %-10s %-18s %2d questions  %s\n",
				r.EndedAt.Format("2006-01-02 15:04"), r.SessionID, r.Outcome, r.Questions, r.Character)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int("recent", 0, "Also list the N most recent games")
}
