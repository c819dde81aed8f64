package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitrinecms/vitrine/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Run the Model Context Protocol server over stdio. MCP clients launch
this command as a subprocess to browse the portfolio's public content;
all tools are read-only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs go to stderr: stdout carries the MCP protocol stream.
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}))

			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			return mcp.NewMCPServer(st, logger).ServeStdio()
		},
	}
}
