package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recruitee-mcp/recruitee-mcp/internal/api"
	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/recruitee"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve JSON-RPC over stdin/stdout, one request per line",
	Long: `Reads newline-delimited JSON-RPC requests from stdin and writes one
response line per request to stdout. This is the transport MCP desktop
clients spawn; logs go to stderr only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		server, err := api.NewServer(recruitee.New(cfg, logger), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("serving on stdio", "company_id", cfg.CompanyID)
		return api.RunStdio(ctx, server, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
