package main

import (
	"fmt"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/cli"
	"github.com/aretw0/guessr/internal/logging"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the decision tree visualization",
	Long: `Trains the decision tree on the dataset and outputs a Mermaid diagram (graph TD).
Pass --answers to replay a game and highlight the path it took.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		answers, _ := cmd.Flags().GetStringSlice("answers")

		app, err := cli.NewApp(cmd.Context(), cfg, logging.NewNop())
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if _, err := app.Engine.StartReply(ctx, guessr.DefaultSession); err != nil {
			return fmt.Errorf("error training tree: %w", err)
		}
		for _, a := range answers {
			app.Engine.Answer(ctx, guessr.DefaultSession, a)
		}

		output, err := app.Engine.Graph(ctx, guessr.DefaultSession)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("answers", nil, "Answers to replay before rendering, e.g. yes,no")
}
