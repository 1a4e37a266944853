package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing uidrive tools",
	Long: `Start a Model Context Protocol (MCP) server exposing capture, script
execution, session management, and clipboard tools.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uidrive serve
  uidrive serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}

	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	srv := server.New(st, provider)
	return srv.Serve(server.Config{Transport: transport, Port: port})
}
