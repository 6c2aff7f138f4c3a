package main

import (
	"github.com/aretw0/guessr/internal/cli"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the dataset and report on the trained tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		report, err := cli.Check(cmd.Context(), cfg.Dataset, cfg.NameColumn, cfg.MaxDepth)
		if err != nil {
			return err
		}
		report.Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
