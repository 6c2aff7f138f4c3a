package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/guessr"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of guessr",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "guessr version %s\n", strings.TrimSpace(guessr.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
