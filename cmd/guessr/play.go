package main

import (
	"github.com/aretw0/guessr/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long:  `Starts a game on the terminal. Answer 'yes', 'no' or 'don't know'; type 'quit' to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		sessionID, _ := cmd.Flags().GetString("session")

		logger, err := cli.NewLogger(cfg.LogLevel, true)
		if err != nil {
			return err
		}

		ctx, stop := cli.SignalContext(cmd.Context())
		defer stop()

		app, err := cli.NewApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.Play(ctx, app, cli.PlayOptions{
			SessionID: sessionID,
			Headless:  headless,
			Input:     cmd.InOrStdin(),
			Output:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, prompts or styling)")
	playCmd.Flags().String("session", "", "Session ID to play in")

	// 'play' is the default if no command is provided.
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
