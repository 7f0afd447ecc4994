package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/integration"
)

var installClient string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register this server with a local MCP client application",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		executable, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to resolve own path: %w", err)
		}
		entry := integration.NewServerEntry(executable, cfg)

		var targets []integration.Integration
		switch installClient {
		case "claude-desktop":
			targets = append(targets, &integration.ClaudeIntegration{})
		case "codex":
			targets = append(targets, &integration.CodexIntegration{})
		case "all":
			targets = append(targets, &integration.ClaudeIntegration{}, &integration.CodexIntegration{})
		default:
			return fmt.Errorf("unknown client %q (want claude-desktop, codex or all)", installClient)
		}

		for _, target := range targets {
			if err := target.Configure(entry); err != nil {
				return fmt.Errorf("failed to configure %s: %w", target.Name(), err)
			}
			logger.Info("registered server", "client", target.Name())
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %q with %s\n", integration.EntryName, target.Name())
		}
		return nil
	},
}

func init() {
	installCmd.Flags().StringVar(&installClient, "client", "all", "client to configure (claude-desktop, codex, all)")
	rootCmd.AddCommand(installCmd)
}
