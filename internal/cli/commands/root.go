// Package commands wires the cobra command tree for the recruitee-mcp
// binary.
package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/recruitee-mcp/recruitee-mcp/internal/config"
	"github.com/recruitee-mcp/recruitee-mcp/internal/logging"
)

var (
	cfgFile     string
	companyID   string
	apiToken    string
	baseURL     string
	timeoutSecs float64
	logLevel    string
	logFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "recruitee-mcp",
	Short: "JSON-RPC relay for the Recruitee recruiting API",
	Long: `recruitee-mcp exposes Recruitee offers, candidates and pipelines as MCP
tools over HTTP or stdio, so MCP clients can search and manage recruiting
data through a single JSON-RPC endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/recruitee-mcp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&companyID, "company-id", "", "Recruitee company identifier")
	rootCmd.PersistentFlags().StringVar(&apiToken, "api-token", "", "Recruitee API token")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "Recruitee API base URL")
	rootCmd.PersistentFlags().Float64Var(&timeoutSecs, "timeout", config.DefaultTimeout.Seconds(), "upstream request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// loadConfig merges settings in increasing precedence: defaults, config
// file, environment, flags. Flags only override when explicitly set.
func loadConfig(cmd *cobra.Command) (config.Config, *logging.Logger, error) {
	cfg, err := config.LoadFile(configPath())
	if err != nil {
		return cfg, nil, err
	}
	if err := cfg.ApplyEnv(config.EnvMap()); err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("company-id") {
		cfg.CompanyID = companyID
	}
	if flags.Changed("api-token") {
		cfg.APIToken = apiToken
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = time.Duration(timeoutSecs * float64(time.Second))
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	for _, warning := range cfg.Normalize() {
		logger.Warn(warning)
	}
	return cfg, logger, nil
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(configDir, "recruitee-mcp", "config.yaml")
}
