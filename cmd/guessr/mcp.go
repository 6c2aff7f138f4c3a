package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/guessr/internal/cli"
	"github.com/aretw0/guessr/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the game as an MCP Server.
This allows AI agents (like Claude Desktop) to play through the start_game,
answer_question and quit_game tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.
- http: Uses the streamable HTTP transport at /mcp.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port := cfg.MCPPort
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		logger, err := cli.NewLogger(cfg.LogLevel, false)
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

		srv := mcp.NewServer(app.Engine, mcp.WithToken(cfg.Token), mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting guessr MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			err = srv.ServeSSE(ctx, port)
		case "http":
			err = srv.ServeHTTP(ctx, port)
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse, http", transport)
		}
		if err != nil {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio', 'sse' or 'http'")
	mcpCmd.Flags().Int("port", 0, "Port to listen on (sse and http only; defaults to MCP_PORT or 8000)")
}
